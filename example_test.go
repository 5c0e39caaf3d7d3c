package crawlbackoff_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	crawlbackoff "github.com/always-cache/crawl-backoff"
)

func ExampleBackoff_Middleware() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "Hello world")
	})
	handler := crawlbackoff.New(crawlbackoff.Config{}).Middleware(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/old-page", nil))
	fmt.Println(rec.Code, rec.Header().Get("Retry-After"))
	// Output: 503 1209600
}
