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

package controller

const (
	SnapshotPolicyResourceType = "SnapshotPolicy"
	IndexRollupResourceType    = "IndexRollup"

	DefaultSyncInterval = "10s"

	ResourceFinalizer = "index-management-operator.freepik.com/finalizer"

	// Status phases
	PhasePending = "Pending"
	PhaseSyncing = "Syncing"
	PhaseReady   = "Ready"
	PhaseError   = "Error"
)

// Log message templates: resource type, namespaced name, error
const (
	ResourceNotFoundError          = "%s '%s' resource not found. Ignoring since object must be deleted."
	ResourceRetrievalError         = "Error getting the %s '%s' from the cluster: %s"
	ResourceFinalizersUpdateError  = "Failed to update finalizer of %s '%s': %s"
	ResourceConditionUpdateError   = "Failed to update the condition on %s '%s': %s"
	ResourceSyncTimeRetrievalError = "Can not get synchronization time from the %s '%s': %s"
	SyncTargetError                = "Can not sync the target for the %s '%s': %s"
)
