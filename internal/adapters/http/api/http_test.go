package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/careerdesk/internal/adapters/http/api"
	"github.com/okian/careerdesk/internal/adapters/search"
	service "github.com/okian/careerdesk/internal/app"
	"github.com/okian/careerdesk/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// recordingResolver answers with a fixed reply and remembers its input.
type recordingResolver struct {
	reply  string
	panics bool
	name   string
	raw    map[string]any
}

func (r *recordingResolver) Resolve(_ context.Context, name string, raw map[string]any) string {
	if r.panics {
		panic("boom")
	}
	r.name = name
	r.raw = raw
	return r.reply
}

type reply struct {
	FulfillmentText     string `json:"fulfillmentText"`
	Source              string `json:"source"`
	FulfillmentResponse *struct {
		Messages []struct {
			Text struct {
				Text []string `json:"text"`
			} `json:"text"`
		} `json:"messages"`
	} `json:"fulfillment_response"`
}

func newMux(res api.Resolver, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(res, opts...).Register(context.Background(), mux)
	return mux
}

func post(mux http.Handler, path, body string) (*httptest.ResponseRecorder, reply) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var out reply
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestWebhook_ES(t *testing.T) {
	Convey("Given a webhook server", t, func() {
		res := &recordingResolver{reply: "hello"}
		mux := newMux(res, api.WithSourceTag("test-source"))

		Convey("When an ES request arrives", func() {
			w, out := post(mux, "/df-webhook", `{
				"responseId": "abc",
				"queryResult": {
					"intent": {"displayName": "Find Roles"},
					"parameters": {"practice": "Tax", "location": "Pune"}
				}
			}`)

			Convey("Then the intent and parameters should reach the resolver", func() {
				So(res.name, ShouldEqual, "Find Roles")
				So(res.raw, ShouldResemble, map[string]any{"practice": "Tax", "location": "Pune"})
			})

			Convey("And the reply should be plain fulfillment text with the source tag", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
				So(out.FulfillmentText, ShouldEqual, "hello")
				So(out.Source, ShouldEqual, "test-source")
				So(out.FulfillmentResponse, ShouldBeNil)
			})
		})

		Convey("When the body is not JSON", func() {
			w, out := post(mux, "/df-webhook", `intent=Find Roles`)

			Convey("Then it should be treated as an empty request", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(res.name, ShouldEqual, "UNKNOWN")
				So(res.raw, ShouldBeEmpty)
				So(out.FulfillmentText, ShouldEqual, "hello")
			})
		})

		Convey("When parameters are not an object", func() {
			_, _ = post(mux, "/df-webhook", `{"queryResult":{"intent":{"displayName":"Find Roles"},"parameters":["Tax"]}}`)

			Convey("Then the intent should still resolve with no parameters", func() {
				So(res.name, ShouldEqual, "Find Roles")
				So(res.raw, ShouldBeEmpty)
			})
		})

		Convey("When the method is not POST", func() {
			req := httptest.NewRequest(http.MethodGet, "/df-webhook", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
			})
		})
	})
}

func TestWebhook_CX(t *testing.T) {
	Convey("Given a webhook server on a custom path", t, func() {
		res := &recordingResolver{reply: "cx reply"}
		mux := newMux(res, api.WithWebhookPath("/cx"))

		Convey("When a CX request with a tag and session parameters arrives", func() {
			w, out := post(mux, "/cx", `{
				"fulfillmentInfo": {"tag": "Application Status"},
				"sessionInfo": {"parameters": {"application_id": "DL-1-IN"}}
			}`)

			Convey("Then the tag and session parameters should be used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(res.name, ShouldEqual, "Application Status")
				So(res.raw, ShouldResemble, map[string]any{"application_id": "DL-1-IN"})
			})

			Convey("And the reply should be mirrored into the CX message shape", func() {
				So(out.FulfillmentText, ShouldEqual, "cx reply")
				So(out.Source, ShouldEqual, api.DefaultSourceTag)
				So(out.FulfillmentResponse, ShouldNotBeNil)
				So(out.FulfillmentResponse.Messages[0].Text.Text, ShouldResemble, []string{"cx reply"})
			})
		})
	})
}

func TestWebhook_Recover(t *testing.T) {
	Convey("Given a resolver that panics", t, func() {
		mux := newMux(&recordingResolver{panics: true}, api.WithApology("sorry"))

		Convey("When a request arrives", func() {
			w, out := post(mux, "/df-webhook", `{}`)

			Convey("Then the agent should still get a 200 apology", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(out.FulfillmentText, ShouldEqual, "sorry")
			})
		})
	})
}

func TestWebhook_EndToEnd(t *testing.T) {
	Convey("Given the real dispatcher behind the webhook", t, func() {
		release := make(chan struct{})
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer slow.Close()
		defer close(release)

		client := search.NewClient(search.WithBaseURL(slow.URL+"/search"), search.WithTimeout(50*time.Millisecond))
		d := service.New(service.WithSearcher(client))
		mux := newMux(d, api.WithApology(service.ErrorText))

		Convey("When Search Roles times out upstream", func() {
			w, out := post(mux, "/df-webhook", `{"queryResult":{"intent":{"displayName":"Search Roles"},"parameters":{"keyword":"cloud"}}}`)

			Convey("Then the reply should be 200 with the search URL and a manual-browse hint", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(out.FulfillmentText, ShouldContainSubstring, slow.URL+"/search?keyword=cloud")
				So(out.FulfillmentText, ShouldContainSubstring, "browse them manually")
			})
		})

		Convey("When the intent is unknown", func() {
			_, out := post(mux, "/df-webhook", `{"queryResult":{"intent":{"displayName":"Weather"}}}`)

			Convey("Then the help text should be returned", func() {
				So(out.FulfillmentText, ShouldEqual, service.HelpText)
			})
		})
	})
}

func TestHealthAndMetrics(t *testing.T) {
	Convey("Given a registered server", t, func() {
		mux := newMux(&recordingResolver{reply: "x"})

		Convey("Then /healthz should report ok", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("Then /healthz should reject writes", func() {
			req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then /metrics should expose webhook series after a call", func() {
			_, _ = post(mux, "/df-webhook", `{}`)
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "careerdesk_webhook_http_requests_total")
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { api.NewServer(&recordingResolver{}).Register(context.Background(), nil) }, ShouldPanic)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		}))

		Convey("When the caller supplies an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it should be echoed", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When no id is supplied", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then a UUID should be minted", func() {
				So(len(w.Header().Get(api.RequestIDHeader)), ShouldEqual, 36)
				So(seen, ShouldEqual, w.Header().Get(api.RequestIDHeader))
			})
		})
	})
}

func TestKindErrors(t *testing.T) {
	Convey("Given kind errors", t, func() {
		cause := errors.New("unexpected EOF")
		err := api.WrapKind("api.webhook", api.ErrBadRequest, cause)

		Convey("Then both kind and cause should match", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.webhook: bad request: unexpected EOF")
		})

		Convey("Then NewKind should carry only the kind", func() {
			k := api.NewKind("api.healthz", api.ErrMethodNotAllowed)
			So(errors.Is(k, api.ErrMethodNotAllowed), ShouldBeTrue)
			So(k.Error(), ShouldEqual, "api.healthz: method not allowed")
		})
	})
}
