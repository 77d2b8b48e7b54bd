package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /admin/users/{username}/roles)
	GrantRole(w http.ResponseWriter, r *http.Request, username string)
	// (POST /auth/login)
	Login(w http.ResponseWriter, r *http.Request)
	// (POST /auth/register)
	Register(w http.ResponseWriter, r *http.Request)
	// (GET /contributors)
	ListContributors(w http.ResponseWriter, r *http.Request, params ListContributorsParams)
	// (GET /contributors/contributions)
	ListContributorsByContributions(w http.ResponseWriter, r *http.Request)
	// (DELETE /contributors/{name})
	DeleteContributor(w http.ResponseWriter, r *http.Request, name string)
	// (PUT /contributors/{name})
	UpdateContributor(w http.ResponseWriter, r *http.Request, name string)
	// (GET /health/live)
	GetLiveness(w http.ResponseWriter, r *http.Request)
	// (GET /health/ready)
	GetReadiness(w http.ResponseWriter, r *http.Request)
	// (GET /resources)
	ListResources(w http.ResponseWriter, r *http.Request, params ListResourcesParams)
	// (POST /resources)
	CreateResource(w http.ResponseWriter, r *http.Request)
	// (GET /resources/contributor/{name})
	ListResourcesByContributor(w http.ResponseWriter, r *http.Request, name string)
	// (GET /resources/format/{format_category})
	ListResourcesByFormat(w http.ResponseWriter, r *http.Request, formatCategory string)
	// (GET /resources/id/{id})
	GetResourceByID(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// (DELETE /resources/id/{id}/like)
	UnlikeResource(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// (POST /resources/id/{id}/like)
	LikeResource(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// (GET /resources/id/{id}/likes)
	GetResourceLikes(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// (GET /resources/learning/{learning_id})
	GetResourceByLearningID(w http.ResponseWriter, r *http.Request, learningId int64)
	// (GET /resources/newest)
	ListNewestResources(w http.ResponseWriter, r *http.Request)
	// (GET /resources/search/{keyword})
	SearchResources(w http.ResponseWriter, r *http.Request, keyword string)
	// (GET /resources/sub/{sub_category})
	ListResourcesBySubCategory(w http.ResponseWriter, r *http.Request, subCategory string)
	// (GET /resources/title/{title})
	ListResourcesByTitle(w http.ResponseWriter, r *http.Request, title string)
	// (GET /resources/updated)
	ListRecentlyUpdatedResources(w http.ResponseWriter, r *http.Request)
	// (DELETE /resources/{learning_id})
	DeleteResource(w http.ResponseWriter, r *http.Request, learningId int64)
	// (PUT /resources/{learning_id})
	UpdateResource(w http.ResponseWriter, r *http.Request, learningId int64)
}

// MiddlewareFunc wraps a single route after its pattern has been matched.
type MiddlewareFunc func(http.Handler) http.Handler

// InvalidParamFormatError is passed to the error handler when a path or
// query parameter cannot be bound to its declared type.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// serve runs h behind the route middlewares. The first middleware in the
// list is the outermost.
func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	handler := http.Handler(h)
	for i := len(siw.HandlerMiddlewares) - 1; i >= 0; i-- {
		handler = siw.HandlerMiddlewares[i](handler)
	}
	handler.ServeHTTP(w, r)
}

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

// stringPath adapts a handler taking one string path parameter.
func (siw *ServerInterfaceWrapper) stringPath(name string, h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var value string
		if err := bindPath(r, name, &value); err != nil {
			siw.ErrorHandlerFunc(w, r, err)
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { h(w, r, value) })
	}
}

// uuidPath adapts a handler taking one UUID path parameter.
func (siw *ServerInterfaceWrapper) uuidPath(name string, h func(http.ResponseWriter, *http.Request, openapi_types.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var value openapi_types.UUID
		if err := bindPath(r, name, &value); err != nil {
			siw.ErrorHandlerFunc(w, r, err)
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { h(w, r, value) })
	}
}

// int64Path adapts a handler taking one integer path parameter.
func (siw *ServerInterfaceWrapper) int64Path(name string, h func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var value int64
		if err := bindPath(r, name, &value); err != nil {
			siw.ErrorHandlerFunc(w, r, err)
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { h(w, r, value) })
	}
}

// plain adapts a handler without parameters.
func (siw *ServerInterfaceWrapper) plain(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siw.serve(w, r, h)
	}
}

// ListResources operation middleware
func (siw *ServerInterfaceWrapper) ListResources(w http.ResponseWriter, r *http.Request) {
	var params ListResourcesParams
	if err := bindQuery(r, "page", &params.Page); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if err := bindQuery(r, "limit", &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListResources(w, r, params)
	})
}

// ListContributors operation middleware
func (siw *ServerInterfaceWrapper) ListContributors(w http.ResponseWriter, r *http.Request) {
	var params ListContributorsParams
	if err := bindQuery(r, "name", &params.Name); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if err := bindQuery(r, "id", &params.Id); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListContributors(w, r, params)
	})
}

// ChiServerOptions configures the route table.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
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
		r.Post(base+"/auth/register", wrapper.plain(si.Register))
		r.Post(base+"/auth/login", wrapper.plain(si.Login))
		r.Get(base+"/health/live", wrapper.plain(si.GetLiveness))
		r.Get(base+"/health/ready", wrapper.plain(si.GetReadiness))

		r.Get(base+"/resources", wrapper.ListResources)
		r.Post(base+"/resources", wrapper.plain(si.CreateResource))
		r.Get(base+"/resources/newest", wrapper.plain(si.ListNewestResources))
		r.Get(base+"/resources/updated", wrapper.plain(si.ListRecentlyUpdatedResources))
		r.Get(base+"/resources/id/{id}", wrapper.uuidPath("id", si.GetResourceByID))
		r.Get(base+"/resources/id/{id}/likes", wrapper.uuidPath("id", si.GetResourceLikes))
		r.Post(base+"/resources/id/{id}/like", wrapper.uuidPath("id", si.LikeResource))
		r.Delete(base+"/resources/id/{id}/like", wrapper.uuidPath("id", si.UnlikeResource))
		r.Get(base+"/resources/learning/{learning_id}", wrapper.int64Path("learning_id", si.GetResourceByLearningID))
		r.Get(base+"/resources/title/{title}", wrapper.stringPath("title", si.ListResourcesByTitle))
		r.Get(base+"/resources/contributor/{name}", wrapper.stringPath("name", si.ListResourcesByContributor))
		r.Get(base+"/resources/search/{keyword}", wrapper.stringPath("keyword", si.SearchResources))
		r.Get(base+"/resources/format/{format_category}", wrapper.stringPath("format_category", si.ListResourcesByFormat))
		r.Get(base+"/resources/sub/{sub_category}", wrapper.stringPath("sub_category", si.ListResourcesBySubCategory))
		r.Put(base+"/resources/{learning_id}", wrapper.int64Path("learning_id", si.UpdateResource))
		r.Delete(base+"/resources/{learning_id}", wrapper.int64Path("learning_id", si.DeleteResource))

		r.Get(base+"/contributors", wrapper.ListContributors)
		r.Get(base+"/contributors/contributions", wrapper.plain(si.ListContributorsByContributions))
		r.Put(base+"/contributors/{name}", wrapper.stringPath("name", si.UpdateContributor))
		r.Delete(base+"/contributors/{name}", wrapper.stringPath("name", si.DeleteContributor))

		r.Post(base+"/admin/users/{username}/roles", wrapper.stringPath("username", si.GrantRole))
	})

	return r
}
