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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SecretKeySelector selects a key of a Secret.
type SecretKeySelector struct {
	// Name of the secret
	Name string `json:"name"`
	// Namespace of the secret (optional, defaults to the same namespace as the resource)
	// +optional
	Namespace string `json:"namespace,omitempty"`
	// Key in the secret to select
	Key string `json:"key"`
}

// ResourceSelector defines how to select and connect to a search cluster
type ResourceSelector struct {
	// Name of the Elasticsearch resource (ECK cluster name)
	Name string `json:"name"`
	// Namespace of the Elasticsearch resource (defaults to the same namespace as this resource)
	// +optional
	Namespace string `json:"namespace,omitempty"`

	// ClusterType skips auto-detection of the cluster flavour
	// +optional
	// +kubebuilder:validation:Enum=elasticsearch;opensearch
	ClusterType string `json:"clusterType,omitempty"`

	// Manual configuration (optional) - if provided, these values override ECK automatic discovery
	// Endpoint is the cluster URL (e.g., https://my-opensearch.example.com:9200)
	// +optional
	Endpoint string `json:"endpoint,omitempty"`
	// Username for cluster authentication
	// +optional
	Username string `json:"username,omitempty"`
	// PasswordSecretRef references a Secret containing the password
	// +optional
	PasswordSecretRef *SecretKeySelector `json:"passwordSecretRef,omitempty"`
	// CACertSecretRef references a Secret containing the CA certificate
	// +optional
	CACertSecretRef *SecretKeySelector `json:"caCertSecretRef,omitempty"`
}

// CronSchedule describes when a job runs, either as a raw cron expression or
// through structured fields that are turned into one.
// When frequency is empty or "custom" the expression is used as written.
type CronSchedule struct {
	// Expression is a five field cron expression: minute hour day-of-month month day-of-week
	// +optional
	Expression string `json:"expression,omitempty"`

	// Timezone is an IANA timezone name
	// +optional
	// +kubebuilder:default="UTC"
	Timezone string `json:"timezone,omitempty"`

	// Frequency selects which of the structured fields apply
	// +optional
	// +kubebuilder:validation:Enum=hourly;daily;weekly;monthly;custom
	Frequency string `json:"frequency,omitempty"`

	// +optional
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=59
	Minute *int `json:"minute,omitempty"`

	// +optional
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=23
	Hour *int `json:"hour,omitempty"`

	// DayOfWeek is used by weekly schedules (MON..SUN or 0-7)
	// +optional
	// +kubebuilder:validation:Pattern=`^(MON|TUE|WED|THU|FRI|SAT|SUN|[0-7])$`
	DayOfWeek string `json:"dayOfWeek,omitempty"`

	// DayOfMonth is used by monthly schedules
	// +optional
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=31
	DayOfMonth *int `json:"dayOfMonth,omitempty"`
}

// ScheduleStatus reports the schedule that was actually written to the cluster
type ScheduleStatus struct {
	// Name of the policy or job owning the schedule
	Name string `json:"name"`

	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
	Frequency  string `json:"frequency"`

	// Description is a short human readable rendering of the schedule
	// +optional
	Description string `json:"description,omitempty"`

	// NextRun is the next activation computed by the operator
	// +optional
	NextRun *metav1.Time `json:"nextRun,omitempty"`
}

// SyncStatus is the observed state shared by every resource of this group
type SyncStatus struct {
	// Phase represents the current phase of the resource
	// Possible values: Pending, Syncing, Ready, Error
	// +optional
	Phase string `json:"phase,omitempty"`

	// Message provides additional information about the current phase
	// +optional
	Message string `json:"message,omitempty"`

	// TargetCluster is the namespace/name of the target cluster
	// Format: "namespace/name"
	// +optional
	TargetCluster string `json:"targetCluster,omitempty"`

	// AppliedResources lists the names that were successfully applied to the cluster.
	// This is used to track which entries need to be deleted if they are removed from the spec.
	// +optional
	AppliedResources []string `json:"appliedResources,omitempty"`

	// Schedules lists the resolved schedule of every applied entry
	// +optional
	Schedules []ScheduleStatus `json:"schedules,omitempty"`

	// LastSyncTime is the timestamp of the last successful synchronization
	// +optional
	LastSyncTime *metav1.Time `json:"lastSyncTime,omitempty"`

	// conditions represent the current state of the resource.
	// +listType=map
	// +listMapKey=type
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}
