/*
Copyright 2024.

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

package pools

import (
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/opensearch-project/opensearch-go/v2"

	"index-management-operator.freepik.com/index-management-operator/internal/apicaller"
)

const (
	ClusterTypeElasticsearch = "elasticsearch"
	ClusterTypeOpenSearch    = "opensearch"
)

// ClusterConnection holds the connection details and clients for a search cluster.
// Elasticsearch is only set for Elasticsearch clusters; OpenSearch is always set.
type ClusterConnection struct {
	Endpoint    string
	Username    string
	Password    string
	CACert      string
	ClusterType string // "elasticsearch" or "opensearch"
	Version     string // cluster version (e.g., "8.11.0", "2.11.0")

	// Fingerprint identifies the selector settings the connection was built from
	Fingerprint string

	Elasticsearch *elasticsearch.Client
	OpenSearch    *opensearch.Client

	// Caller sends plugin and passthrough requests through the client matching ClusterType
	Caller *apicaller.Caller
}

// IsOpenSearch reports whether the connection targets an OpenSearch cluster
func (c *ClusterConnection) IsOpenSearch() bool {
	return c.ClusterType == ClusterTypeOpenSearch
}

// ClusterConnectionsStore stores cluster connections by namespace_name
type ClusterConnectionsStore struct {
	mu    sync.RWMutex
	Store map[string]*ClusterConnection
}

func NewClusterConnectionsStore() *ClusterConnectionsStore {
	return &ClusterConnectionsStore{Store: map[string]*ClusterConnection{}}
}

func (c *ClusterConnectionsStore) Set(key string, connection *ClusterConnection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Store[key] = connection
}

func (c *ClusterConnectionsStore) Get(key string) (*ClusterConnection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	connection, exists := c.Store[key]
	return connection, exists
}

func (c *ClusterConnectionsStore) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Store, key)
}
