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

// SnapshotPolicySpec defines the desired state of SnapshotPolicy
// Policies are written to Elasticsearch SLM or OpenSearch Snapshot Management depending on the cluster
type SnapshotPolicySpec struct {
	// SyncInterval defines the interval for reconciliation (e.g., "30s", "5m"). Defaults to 10s.
	// +optional
	// +kubebuilder:default="10s"
	SyncInterval string `json:"syncInterval,omitempty"`

	// ResourceSelector specifies the target cluster
	ResourceSelector ResourceSelector `json:"resourceSelector"`

	// Policies contains the snapshot policies to apply, keyed by policy name
	Policies map[string]SnapshotPolicyDefinition `json:"policies"`
}

// SnapshotPolicyDefinition describes one snapshot policy
type SnapshotPolicyDefinition struct {
	// +optional
	Description string `json:"description,omitempty"`

	// Repository is the name of an already registered snapshot repository
	// +kubebuilder:validation:MinLength=1
	Repository string `json:"repository"`

	// SnapshotName is the Elasticsearch date-math name of the snapshots (default: "<{policy}-{now/d}>")
	// +optional
	SnapshotName string `json:"snapshotName,omitempty"`

	// Schedule defines when snapshots are taken
	Schedule CronSchedule `json:"schedule"`

	// Indices are the index patterns to include in the snapshots
	// +optional
	Indices []string `json:"indices,omitempty"`

	// Config is merged into the snapshot configuration as-is
	// +optional
	Config *apiextensionsv1.JSON `json:"config,omitempty"`

	// Retention is written as the Elasticsearch "retention" block or the OpenSearch "deletion.condition" block
	// +optional
	Retention *apiextensionsv1.JSON `json:"retention,omitempty"`

	// DeletionSchedule defines when expired snapshots are deleted (OpenSearch only)
	// +optional
	DeletionSchedule *CronSchedule `json:"deletionSchedule,omitempty"`
}

// SnapshotPolicyStatus defines the observed state of SnapshotPolicy.
type SnapshotPolicyStatus struct {
	SyncStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Cluster",type=string,JSONPath=`.status.targetCluster`
// +kubebuilder:printcolumn:name="Message",type=string,JSONPath=`.status.message`,priority=1
// +kubebuilder:printcolumn:name="Last Sync",type=date,JSONPath=`.status.lastSyncTime`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// SnapshotPolicy is the Schema for the snapshotpolicies API
type SnapshotPolicy struct {
	metav1.TypeMeta `json:",inline"`

	// metadata is a standard object metadata
	// +optional
	metav1.ObjectMeta `json:"metadata,omitzero"`

	// spec defines the desired state of SnapshotPolicy
	// +required
	Spec SnapshotPolicySpec `json:"spec"`

	// status defines the observed state of SnapshotPolicy
	// +optional
	Status SnapshotPolicyStatus `json:"status,omitzero"`
}

// +kubebuilder:object:root=true

// SnapshotPolicyList contains a list of SnapshotPolicy
type SnapshotPolicyList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitzero"`
	Items           []SnapshotPolicy `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SnapshotPolicy{}, &SnapshotPolicyList{})
}
