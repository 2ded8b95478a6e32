package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code of an ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed  ErrorResponseCode = "validation_failed"
	ErrorResponseCodeBlogNotFound      ErrorResponseCode = "blog_not_found"
	ErrorResponseCodeBlogAlreadyExists ErrorResponseCode = "blog_already_exists"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Fields  []FieldError      `json:"fields,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// BlogID is the {id} path parameter.
type BlogID = int64

// SearchParams are the path parameters of the search route.
type SearchParams struct {
	Word        string
	Celebrities []string
	Year        int
	Author      string
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// ListBlogs handles GET /blogs.
	ListBlogs(w http.ResponseWriter, r *http.Request)
	// CreateBlog handles POST /blogs.
	CreateBlog(w http.ResponseWriter, r *http.Request)
	// GetBlog handles GET /blogs/{id}.
	GetBlog(w http.ResponseWriter, r *http.Request, id BlogID)
	// UpdateBlog handles PUT /blogs/{id}.
	UpdateBlog(w http.ResponseWriter, r *http.Request, id BlogID)
	// DeleteBlog handles DELETE /blogs/{id}.
	DeleteBlog(w http.ResponseWriter, r *http.Request, id BlogID)
	// SearchBlogs handles GET /blogs/{word}/{celebrities}/{year}/{author}.
	SearchBlogs(w http.ResponseWriter, r *http.Request, params SearchParams)
	// HealthCheck handles GET /health.
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Metrics handles GET /metrics.
	Metrics(w http.ResponseWriter, r *http.Request)
}

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper binds path parameters before calling the handlers.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a path parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, middleware := range siw.HandlerMiddlewares {
		h = middleware(h)
	}
	h.ServeHTTP(w, r)
}

// ListBlogs operation middleware.
func (siw *ServerInterfaceWrapper) ListBlogs(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.ListBlogs))
}

// CreateBlog operation middleware.
func (siw *ServerInterfaceWrapper) CreateBlog(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.CreateBlog))
}

func (siw *ServerInterfaceWrapper) withID(
	w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request, BlogID),
) {
	var id BlogID
	if err := bindPath(r, "id", &id); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next(w, r, id)
	}))
}

// GetBlog operation middleware.
func (siw *ServerInterfaceWrapper) GetBlog(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.GetBlog)
}

// UpdateBlog operation middleware.
func (siw *ServerInterfaceWrapper) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.UpdateBlog)
}

// DeleteBlog operation middleware.
func (siw *ServerInterfaceWrapper) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.DeleteBlog)
}

// SearchBlogs operation middleware.
func (siw *ServerInterfaceWrapper) SearchBlogs(w http.ResponseWriter, r *http.Request) {
	var params SearchParams

	if err := bindPath(r, "word", &params.Word); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if err := bindPath(r, "celebrities", &params.Celebrities); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if err := bindPath(r, "year", &params.Year); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if raw := chi.URLParam(r, "year"); len(raw) != 4 {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{
			ParamName: "year", Err: fmt.Errorf("want a 4-digit year, got %q", raw),
		})
		return
	}
	if err := bindPath(r, "author", &params.Author); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchBlogs(w, r, params)
	}))
}

// HealthCheck operation middleware.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.HealthCheck))
}

// Metrics operation middleware.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.Metrics))
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts every route of si on options.BaseRouter.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	base := options.BaseURL
	r.Group(func(r chi.Router) {
		r.Get(base+"/blogs", wrapper.ListBlogs)
		r.Post(base+"/blogs", wrapper.CreateBlog)
		r.Get(base+"/blogs/{id}", wrapper.GetBlog)
		r.Put(base+"/blogs/{id}", wrapper.UpdateBlog)
		r.Delete(base+"/blogs/{id}", wrapper.DeleteBlog)
		r.Get(base+"/blogs/{word}/{celebrities}/{year}/{author}", wrapper.SearchBlogs)
		r.Get(base+"/health", wrapper.HealthCheck)
		r.Get(base+"/metrics", wrapper.Metrics)
	})
	return r
}
