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

package globals

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/opensearch-project/opensearch-go/v2"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/apicaller"
	"index-management-operator.freepik.com/index-management-operator/internal/pools"
)

var eckGroupVersionResource = schema.GroupVersionResource{
	Group:    "elasticsearch.k8s.elastic.co",
	Version:  "v1",
	Resource: "elasticsearches",
}

// ClusterKey builds the pool key of the cluster a resource points at
func ClusterKey(resourceSelector *v1alpha1.ResourceSelector) string {
	return fmt.Sprintf("%s_%s", resourceSelector.Namespace, resourceSelector.Name)
}

// GetOrCreateClusterConnection retrieves or creates a connection to an Elasticsearch or OpenSearch cluster.
// The selector namespace must already be defaulted by the caller.
func GetOrCreateClusterConnection(ctx context.Context, clusterKey string, resourceSelector *v1alpha1.ResourceSelector, connectionsPool *pools.ClusterConnectionsStore) (*pools.ClusterConnection, error) {
	logger := log.FromContext(ctx)

	fingerprint := selectorFingerprint(resourceSelector)

	// Check if connection already exists in pool and still matches the selector
	if connection, exists := connectionsPool.Get(clusterKey); exists {
		if connection.Fingerprint == fingerprint {
			logger.Info(fmt.Sprintf("Using existing cluster connection for %s", clusterKey))
			return connection, nil
		}
		logger.Info(fmt.Sprintf("Cluster selector for %s changed, replacing its connection", clusterKey))
	}

	logger.Info(fmt.Sprintf("Creating new cluster connection for %s", clusterKey))

	var (
		endpoint, username, password string
		caCert                       []byte
		err                          error
	)

	if resourceSelector.Endpoint != "" {
		endpoint, username, password, caCert, err = manualCredentials(ctx, resourceSelector)
	} else {
		endpoint, username, password, caCert, err = eckCredentials(ctx, resourceSelector)
	}
	if err != nil {
		return nil, err
	}

	// Create TLS config
	var tlsConfig *tls.Config
	if len(caCert) > 0 {
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsConfig = &tls.Config{
			RootCAs: caCertPool,
		}
	} else {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
		logger.Info("No CA certificate provided, using InsecureSkipVerify (not recommended for production)")
	}

	transport := &http.Transport{
		TLSClientConfig:       tlsConfig,
		ResponseHeaderTimeout: 10 * time.Second,
		IdleConnTimeout:       10 * time.Second,
	}

	// The OpenSearch client does not run a product check, so it is also used to probe the cluster
	osClient, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{endpoint},
		Username:  username,
		Password:  password,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", err)
	}

	clusterType, version, err := detectClusterType(ctx, osClient, resourceSelector.ClusterType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect cluster type: %w", err)
	}

	logger.Info(fmt.Sprintf("Detected cluster type: %s, version: %s", clusterType, version))

	connection := &pools.ClusterConnection{
		Endpoint:    endpoint,
		Username:    username,
		Password:    password,
		CACert:      string(caCert),
		ClusterType: clusterType,
		Version:     version,
		Fingerprint: fingerprint,
		OpenSearch:  osClient,
		Caller:      apicaller.New(osClient),
	}

	if clusterType == pools.ClusterTypeElasticsearch {
		esClient, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{endpoint},
			Username:  username,
			Password:  password,
			Transport: transport,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
		}
		connection.Elasticsearch = esClient
		connection.Caller = apicaller.New(esClient)
	}

	connectionsPool.Set(clusterKey, connection)

	return connection, nil
}

// ReleaseClusterConnection drops the pooled connection when err shows it can no
// longer be used, so the next sync reconnects and reads the credentials again
func ReleaseClusterConnection(ctx context.Context, clusterKey string, err error, connectionsPool *pools.ClusterConnectionsStore) bool {
	if !apicaller.IsConnectionError(err) {
		return false
	}
	if _, exists := connectionsPool.Get(clusterKey); !exists {
		return false
	}

	log.FromContext(ctx).Info(fmt.Sprintf("Releasing cluster connection for %s: %s", clusterKey, err.Error()))
	connectionsPool.Delete(clusterKey)
	return true
}

// selectorFingerprint captures every selector field the connection is built from
func selectorFingerprint(resourceSelector *v1alpha1.ResourceSelector) string {
	secretRef := func(selector *v1alpha1.SecretKeySelector) string {
		if selector == nil {
			return ""
		}
		return fmt.Sprintf("%s/%s/%s", selector.Namespace, selector.Name, selector.Key)
	}

	return strings.Join([]string{
		resourceSelector.ClusterType,
		resourceSelector.Endpoint,
		resourceSelector.Username,
		secretRef(resourceSelector.PasswordSecretRef),
		secretRef(resourceSelector.CACertSecretRef),
	}, "|")
}

// manualCredentials reads the endpoint and credentials configured on the selector
func manualCredentials(ctx context.Context, resourceSelector *v1alpha1.ResourceSelector) (endpoint, username, password string, caCert []byte, err error) {
	logger := log.FromContext(ctx)
	logger.Info(fmt.Sprintf("Using manual cluster configuration, endpoint: %s", resourceSelector.Endpoint))

	endpoint = resourceSelector.Endpoint

	if resourceSelector.Username == "" {
		return "", "", "", nil, fmt.Errorf("username is required when using manual configuration")
	}
	username = resourceSelector.Username

	if resourceSelector.PasswordSecretRef == nil {
		return "", "", "", nil, fmt.Errorf("passwordSecretRef is required when using manual configuration")
	}
	passwordBytes, err := readSecretKey(ctx, resourceSelector.PasswordSecretRef, resourceSelector.Namespace)
	if err != nil {
		return "", "", "", nil, fmt.Errorf("failed to get password: %w", err)
	}
	password = string(passwordBytes)

	if resourceSelector.CACertSecretRef != nil {
		caCert, err = readSecretKey(ctx, resourceSelector.CACertSecretRef, resourceSelector.Namespace)
		if err != nil {
			return "", "", "", nil, fmt.Errorf("failed to get CA certificate: %w", err)
		}
	}

	return endpoint, username, password, caCert, nil
}

// eckCredentials discovers the endpoint and credentials ECK creates for an Elasticsearch resource
func eckCredentials(ctx context.Context, resourceSelector *v1alpha1.ResourceSelector) (endpoint, username, password string, caCert []byte, err error) {
	logger := log.FromContext(ctx)
	logger.Info("Using ECK automatic configuration")

	namespace := resourceSelector.Namespace

	// We mainly need to verify the ECK resource exists
	_, err = Application.KubeRawClient.Resource(eckGroupVersionResource).Namespace(namespace).Get(ctx, resourceSelector.Name, metav1.GetOptions{})
	if err != nil {
		return "", "", "", nil, fmt.Errorf("failed to get ECK cluster: %w", err)
	}

	// ECK creates a service named {elasticsearch-name}-es-http
	endpoint = fmt.Sprintf("https://%s-es-http.%s.svc:9200", resourceSelector.Name, namespace)
	logger.Info(fmt.Sprintf("ECK Elasticsearch endpoint: %s", endpoint))

	secret, err := Application.KubeRawCoreClient.CoreV1().Secrets(namespace).Get(ctx, fmt.Sprintf("%s-es-elastic-user", resourceSelector.Name), metav1.GetOptions{})
	if err != nil {
		return "", "", "", nil, fmt.Errorf("failed to get Elasticsearch credentials secret: %w", err)
	}
	username = "elastic"
	password = string(secret.Data["elastic"])

	caCertSecret, err := Application.KubeRawCoreClient.CoreV1().Secrets(namespace).Get(ctx, fmt.Sprintf("%s-es-http-certs-public", resourceSelector.Name), metav1.GetOptions{})
	if err != nil {
		return "", "", "", nil, fmt.Errorf("failed to get CA certificate secret: %w", err)
	}
	caCert = caCertSecret.Data["tls.crt"]

	return endpoint, username, password, caCert, nil
}

// readSecretKey returns a non-empty value from a Secret, defaulting the Secret namespace
func readSecretKey(ctx context.Context, selector *v1alpha1.SecretKeySelector, defaultNamespace string) ([]byte, error) {
	namespace := selector.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}

	secret, err := Application.KubeRawCoreClient.CoreV1().Secrets(namespace).Get(ctx, selector.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, selector.Name, err)
	}

	value := secret.Data[selector.Key]
	if len(value) == 0 {
		return nil, fmt.Errorf("key %s not found in secret %s/%s", selector.Key, namespace, selector.Name)
	}
	return value, nil
}

// detectClusterType detects the type of cluster (Elasticsearch or OpenSearch) and its version
// If clusterTypeOverride is provided, it will use that instead of auto-detection
func detectClusterType(ctx context.Context, client *opensearch.Client, clusterTypeOverride string) (string, string, error) {
	logger := log.FromContext(ctx)

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return "", "", fmt.Errorf("failed to get cluster info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", "", fmt.Errorf("cluster info request failed: %s", res.String())
	}

	var info struct {
		Version struct {
			Distribution string `json:"distribution"` // OpenSearch includes this field
			Number       string `json:"number"`
		} `json:"version"`
	}

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(bodyBytes, &info); err != nil {
		return "", "", fmt.Errorf("failed to parse cluster info: %w", err)
	}

	if clusterTypeOverride != "" {
		logger.Info(fmt.Sprintf("Using manually configured cluster type: %s", clusterTypeOverride))
		return clusterTypeOverride, info.Version.Number, nil
	}

	// OpenSearch explicitly includes "distribution": "opensearch"
	clusterType := pools.ClusterTypeElasticsearch
	if info.Version.Distribution == "opensearch" {
		clusterType = pools.ClusterTypeOpenSearch
	}

	logger.Info(fmt.Sprintf("Auto-detected cluster type: %s (version: %s)", clusterType, info.Version.Number))

	return clusterType, info.Version.Number, nil
}
