/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apicaller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/opensearch-project/opensearch-go/v2"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
	Type   string
}

var _ = Describe("Caller", func() {
	var (
		ctx      context.Context
		server   *httptest.Server
		caller   *Caller
		recorded []recordedRequest
		handler  http.HandlerFunc
	)

	BeforeEach(func() {
		ctx = context.Background()
		recorded = nil
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			recorded = append(recorded, recordedRequest{
				Method: r.Method,
				Path:   r.URL.Path,
				Query:  r.URL.Query(),
				Body:   string(body),
				Type:   r.Header.Get("Content-Type"),
			})
			handler(w, r)
		}))

		client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{server.URL}})
		Expect(err).NotTo(HaveOccurred())
		caller = New(client)
	})

	AfterEach(func() {
		server.Close()
	})

	It("marshals the body and sends the query", func() {
		res, err := caller.Call(ctx, Request{
			Method: http.MethodPut,
			Path:   "/_plugins/_sm/policies/nightly",
			Query:  url.Values{"if_seq_no": []string{"3"}},
			Body:   map[string]interface{}{"description": "nightly"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StatusCode).To(Equal(http.StatusOK))

		Expect(recorded).To(HaveLen(1))
		Expect(recorded[0].Method).To(Equal(http.MethodPut))
		Expect(recorded[0].Path).To(Equal("/_plugins/_sm/policies/nightly"))
		Expect(recorded[0].Query.Get("if_seq_no")).To(Equal("3"))
		Expect(recorded[0].Body).To(MatchJSON(`{"description":"nightly"}`))
		Expect(recorded[0].Type).To(Equal("application/json"))

		var decoded map[string]bool
		Expect(res.Decode(&decoded)).To(Succeed())
		Expect(decoded["acknowledged"]).To(BeTrue())
	})

	It("sends raw byte bodies untouched", func() {
		_, err := caller.Call(ctx, Request{Method: http.MethodPost, Path: "/_bulk", Body: []byte("{}\n")})
		Expect(err).NotTo(HaveOccurred())
		Expect(recorded[0].Body).To(Equal("{}\n"))
	})

	It("returns an APIError for failed calls", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad"}`))
		}

		_, err := caller.Call(ctx, Request{Method: http.MethodGet, Path: "/_cat/indices"})
		Expect(err).To(HaveOccurred())

		var apiErr *APIError
		Expect(err).To(BeAssignableToTypeOf(apiErr))
		Expect(err.Error()).To(ContainSubstring("400"))
		Expect(err.Error()).To(ContainSubstring(`{"error":"bad"}`))
		Expect(IsNotFound(err)).To(BeFalse())
		Expect(IsConnectionError(err)).To(BeFalse())
	})

	It("reports rejected credentials as a connection error", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}

		_, err := caller.Call(ctx, Request{Method: http.MethodGet, Path: "/_cat/indices"})
		Expect(IsConnectionError(err)).To(BeTrue())
	})

	It("reports an unreachable cluster as a connection error", func() {
		server.Close()

		_, err := caller.Call(ctx, Request{Method: http.MethodGet, Path: "/_cat/indices"})
		Expect(err).To(MatchError(ErrUnreachable))
		Expect(IsConnectionError(err)).To(BeTrue())
	})

	Describe("Version", func() {
		It("returns the concurrency tokens of an existing document", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"_id": "job", "_seq_no": 12, "_primary_term": 2})
			}

			version, err := caller.Version(ctx, "/_plugins/_rollup/jobs/job")
			Expect(err).NotTo(HaveOccurred())
			Expect(version).To(Equal(&DocumentVersion{SeqNo: 12, PrimaryTerm: 2}))
			Expect(version.Query().Get("if_seq_no")).To(Equal("12"))
			Expect(version.Query().Get("if_primary_term")).To(Equal("2"))
		})

		It("returns nil for a missing document", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}

			version, err := caller.Version(ctx, "/_plugins/_rollup/jobs/missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(version).To(BeNil())
		})
	})

	Describe("Delete", func() {
		It("treats a missing document as already deleted", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}

			found, err := caller.Delete(ctx, "/_plugins/_sm/policies/gone")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(recorded[0].Method).To(Equal(http.MethodDelete))
		})

		It("reports deleted documents", func() {
			found, err := caller.Delete(ctx, "/_plugins/_sm/policies/nightly")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
		})
	})
})
