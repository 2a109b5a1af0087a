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

package v1alpha1

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// IndexRollupSpec defines the desired state of IndexRollup
// This resource is specifically for OpenSearch clusters (index rollup plugin)
type IndexRollupSpec struct {
	// SyncInterval defines how often the operator will reconcile this resource (default: 10s)
	// +optional
	SyncInterval string `json:"syncInterval,omitempty"`

	// ResourceSelector specifies the target OpenSearch cluster
	ResourceSelector ResourceSelector `json:"resourceSelector"`

	// Jobs contains the rollup jobs to apply, keyed by job id
	Jobs map[string]RollupJob `json:"jobs"`
}

// RollupJob describes one OpenSearch rollup job
type RollupJob struct {
	// +optional
	Description string `json:"description,omitempty"`

	// SourceIndex is the index or pattern to roll up
	// +kubebuilder:validation:MinLength=1
	SourceIndex string `json:"sourceIndex"`

	// TargetIndex receives the rolled up documents
	// +kubebuilder:validation:MinLength=1
	TargetIndex string `json:"targetIndex"`

	// +optional
	// +kubebuilder:default=true
	Enabled *bool `json:"enabled,omitempty"`

	// +optional
	Continuous bool `json:"continuous,omitempty"`

	// PageSize is the number of buckets processed per search (default: 1000)
	// +optional
	// +kubebuilder:validation:Minimum=1
	PageSize int `json:"pageSize,omitempty"`

	// Schedule defines when the job runs
	Schedule CronSchedule `json:"schedule"`

	// Dimensions is the list of dimension groupings, as accepted by the rollup API
	Dimensions apiextensionsv1.JSON `json:"dimensions"`

	// Metrics is the list of metric aggregations, as accepted by the rollup API
	// +optional
	Metrics *apiextensionsv1.JSON `json:"metrics,omitempty"`
}

// IndexRollupStatus defines the observed state of IndexRollup.
type IndexRollupStatus struct {
	SyncStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase",description="Current phase of the IndexRollup"
// +kubebuilder:printcolumn:name="Cluster",type="string",JSONPath=".status.targetCluster",description="Target cluster"
// +kubebuilder:printcolumn:name="Message",type="string",JSONPath=".status.message",description="Detailed status message",priority=1
// +kubebuilder:printcolumn:name="Last Sync",type="date",JSONPath=".status.lastSyncTime",description="Last successful synchronization time"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// IndexRollup is the Schema for the indexrollups API
type IndexRollup struct {
	metav1.TypeMeta `json:",inline"`

	// metadata is a standard object metadata
	// +optional
	metav1.ObjectMeta `json:"metadata,omitzero"`

	// spec defines the desired state of IndexRollup
	// +required
	Spec IndexRollupSpec `json:"spec"`

	// status defines the observed state of IndexRollup
	// +optional
	Status IndexRollupStatus `json:"status,omitzero"`
}

// +kubebuilder:object:root=true

// IndexRollupList contains a list of IndexRollup
type IndexRollupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitzero"`
	Items           []IndexRollup `json:"items"`
}

func init() {
	SchemeBuilder.Register(&IndexRollup{}, &IndexRollupList{})
}
