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

package indexselect

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/opensearch-project/opensearch-go/v2"

	"index-management-operator.freepik.com/index-management-operator/internal/apicaller"
)

var _ = Describe("List", func() {
	var (
		server           *httptest.Server
		caller           *apicaller.Caller
		dataStreamStatus int
	)

	BeforeEach(func() {
		dataStreamStatus = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/_cat/indices":
				_, _ = w.Write([]byte(`[{"index":"logs-2025.01"},{"index":".kibana"}]`))
			case "/_cat/aliases":
				_, _ = w.Write([]byte(`[{"alias":"logs"}]`))
			case "/_data_stream":
				w.WriteHeader(dataStreamStatus)
				if dataStreamStatus == http.StatusOK {
					_, _ = w.Write([]byte(`{"data_streams":[{"name":"metrics-app"}]}`))
				}
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))

		client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{server.URL}})
		Expect(err).NotTo(HaveOccurred())
		caller = apicaller.New(client)
	})

	AfterEach(func() {
		server.Close()
	})

	It("collects every kind of option", func() {
		options, err := List(context.Background(), caller)
		Expect(err).NotTo(HaveOccurred())
		Expect(options).To(ConsistOf(
			Option{Name: "logs-2025.01", Kind: KindIndex},
			Option{Name: ".kibana", Kind: KindIndex},
			Option{Name: "logs", Kind: KindAlias},
			Option{Name: "metrics-app", Kind: KindDataStream},
		))
	})

	It("tolerates clusters without data streams", func() {
		dataStreamStatus = http.StatusNotFound
		options, err := List(context.Background(), caller)
		Expect(err).NotTo(HaveOccurred())
		Expect(options).To(HaveLen(3))
	})
})

var _ = Describe("Filter", func() {
	options := []Option{
		{Name: "logs-b", Kind: KindIndex},
		{Name: "logs-a", Kind: KindIndex},
		{Name: "logs-a", Kind: KindAlias},
		{Name: ".hidden-logs", Kind: KindIndex},
		{Name: "metrics", Kind: KindDataStream},
	}

	It("dedupes, filters and sorts", func() {
		Expect(Filter(options, "logs")).To(Equal([]Option{
			{Name: "logs-a", Kind: KindIndex},
			{Name: "logs-b", Kind: KindIndex},
		}))
	})

	It("drops excluded names", func() {
		Expect(Filter(options, "", "logs-a", "metrics")).To(Equal([]Option{
			{Name: "logs-b", Kind: KindIndex},
		}))
	})

	It("shows hidden names when searching for them", func() {
		Expect(Filter(options, ".hid")).To(Equal([]Option{
			{Name: ".hidden-logs", Kind: KindIndex},
		}))
	})

	It("finds options by exact name", func() {
		option, found := Find(options, "metrics")
		Expect(found).To(BeTrue())
		Expect(option.Kind).To(Equal(KindDataStream))

		_, found = Find(options, "metric")
		Expect(found).To(BeFalse())
	})
})

var _ = Describe("Matching", func() {
	options := []Option{
		{Name: "logs-2025.02", Kind: KindIndex},
		{Name: "logs-2025.01", Kind: KindIndex},
		{Name: "logs", Kind: KindAlias},
		{Name: "logs-rollup", Kind: KindIndex},
		{Name: ".logs-internal", Kind: KindIndex},
		{Name: "metrics-app", Kind: KindDataStream},
	}

	It("expands wildcards without hidden names", func() {
		Expect(Matching(options, "*logs*")).To(Equal([]Option{
			{Name: "logs", Kind: KindAlias},
			{Name: "logs-2025.01", Kind: KindIndex},
			{Name: "logs-2025.02", Kind: KindIndex},
			{Name: "logs-rollup", Kind: KindIndex},
		}))
	})

	It("returns hidden names for hidden patterns", func() {
		Expect(Matching(options, ".logs-*")).To(Equal([]Option{
			{Name: ".logs-internal", Kind: KindIndex},
		}))
	})

	It("combines comma separated parts once", func() {
		Expect(Matching(options, "metrics-*, logs-2025.01,logs-2025.*")).To(Equal([]Option{
			{Name: "logs-2025.01", Kind: KindIndex},
			{Name: "logs-2025.02", Kind: KindIndex},
			{Name: "metrics-app", Kind: KindDataStream},
		}))
	})

	It("leaves out excluded names", func() {
		Expect(Matching(options, "logs-*", "logs-rollup")).To(Equal([]Option{
			{Name: "logs-2025.01", Kind: KindIndex},
			{Name: "logs-2025.02", Kind: KindIndex},
		}))
	})

	It("returns nothing for unknown patterns", func() {
		Expect(Matching(options, "traces-*")).To(BeEmpty())
	})
})

var _ = Describe("Overlaps", func() {
	DescribeTable("compares index patterns",
		func(a, b string, expected bool) {
			Expect(Overlaps(a, b)).To(Equal(expected))
			Expect(Overlaps(b, a)).To(Equal(expected))
		},
		Entry("identical names", "logs", "logs", true),
		Entry("wildcard covering a name", "logs-*", "logs-rollup", true),
		Entry("disjoint names", "logs-*", "rollup-logs", false),
		Entry("comma separated lists", "metrics,logs-*", "logs-2025", true),
		Entry("distinct lists", "metrics,traces", "logs", false),
	)
})
