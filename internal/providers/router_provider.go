package providers

import (
	"net/http"
	"petcare/internal/structures"
	"strings"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
	index  map[string]int
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.handle(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.handle(http.MethodPost, url, handler)
}

// handle keeps a single route per URL; each URL dispatches on the request
// method so a path such as /pets can serve both listing and creation.
func (rp *RouterProvider) handle(method, url string, handler http.Handler) {
	if i, ok := rp.index[url]; ok {
		md := rp.routes[i].Handler.(*methodDispatcher)
		md.handlers[method] = handler
		return
	}
	md := &methodDispatcher{handlers: map[string]http.Handler{method: handler}}
	rp.index[url] = len(rp.routes)
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: md,
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{index: make(map[string]int)}
}

type methodDispatcher struct {
	handlers map[string]http.Handler
}

func (md *methodDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, ok := md.handlers[r.Method]
	if !ok {
		w.Header().Set("Allow", md.allowed())
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	handler.ServeHTTP(w, r)
}

func (md *methodDispatcher) allowed() string {
	methods := make([]string, 0, len(md.handlers))
	for _, m := range []string{http.MethodGet, http.MethodPost} {
		if _, ok := md.handlers[m]; ok {
			methods = append(methods, m)
		}
	}
	return strings.Join(methods, ", ")
}
