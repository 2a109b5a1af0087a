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
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

type applicationT struct {
	// KubeRawClient reads foreign resources such as ECK Elasticsearch objects
	KubeRawClient dynamic.Interface

	// KubeRawCoreClient reads the Secrets holding cluster credentials
	KubeRawCoreClient kubernetes.Interface
}

var Application = applicationT{}

// SetupKubeClients creates the raw Kubernetes clients used outside of the controller-runtime cache
func SetupKubeClients(config *rest.Config) (err error) {
	Application.KubeRawClient, err = dynamic.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create dynamic client: %w", err)
	}

	Application.KubeRawCoreClient, err = kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create core client: %w", err)
	}

	return nil
}
