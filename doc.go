// Package blogdex embeds the blog content service in-process: blogs are
// stored in a full-text index and found by id, listed, or searched by a
// relevance-ranked multi-criteria query.
//
// The embedded bleve engine is the default; Redis 8 (RediSearch + RedisJSON)
// is available through WithRedis.
//
//	client, _ := blogdex.New(ctx, blogdex.WithBleve("./data"))
//	defer client.Close()
//
//	_, _ = client.Save(ctx, blogdex.Blog{
//	    ID:                 1,
//	    Author:             "jane",
//	    Name:               "AI rising",
//	    Content:            "Machines learn fast",
//	    PublishDate:        time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
//	    CelebrityFullNames: []string{"Elon Musk"},
//	    Active:             true,
//	})
//
//	hits, _ := client.Search().
//	    Word("AI rising").
//	    Celebrities("Elon Musk").
//	    Year(2023).
//	    Author("jane").
//	    Do(ctx)
//
// Client.Handler serves the same operations over HTTP.
package blogdex
