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

package controller

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/globals"
)

// StatusUpdater writes the SyncStatus embedded in object through the status subresource
type StatusUpdater struct {
	Client client.Client

	// Entries names what the resource applies, e.g. "snapshot policies"
	Entries string
}

// UpdateConditionSuccess sets the synced condition to True
func UpdateConditionSuccess(status *v1alpha1.SyncStatus) {

	condition := globals.NewCondition(globals.ConditionTypeResourceSynced, metav1.ConditionTrue,
		globals.ConditionReasonTargetSynced, globals.ConditionReasonTargetSyncedMessage)

	globals.UpdateCondition(&status.Conditions, condition)
}

// UpdateConditionFailure sets the synced condition to False, telling schedule errors apart from cluster errors
func UpdateConditionFailure(status *v1alpha1.SyncStatus, err error) {

	reason, message := globals.ConditionReasonClusterApiCallErrorType, globals.ConditionReasonClusterApiCallErrorMessage
	if IsInvalidSchedule(err) {
		reason, message = globals.ConditionReasonInvalidSchedule, globals.ConditionReasonInvalidScheduleMessage
	}

	condition := globals.NewCondition(globals.ConditionTypeResourceSynced, metav1.ConditionFalse, reason, message)

	globals.UpdateCondition(&status.Conditions, condition)
}

// SetSyncing updates the status to Syncing phase
func (u *StatusUpdater) SetSyncing(ctx context.Context, object client.Object, status *v1alpha1.SyncStatus) {
	logger := log.FromContext(ctx)
	status.Phase = PhaseSyncing
	status.Message = fmt.Sprintf("Synchronizing %s", u.Entries)
	if err := u.Client.Status().Update(ctx, object); err != nil {
		logger.Error(err, "Failed to update status to Syncing")
	}
}

// SetReady updates the status to Ready phase with the applied entries and their schedules
func (u *StatusUpdater) SetReady(ctx context.Context, object client.Object, status *v1alpha1.SyncStatus, targetCluster string, applied []string, schedules []v1alpha1.ScheduleStatus) error {
	now := metav1.Now()
	status.Phase = PhaseReady
	status.Message = fmt.Sprintf("Successfully synced %d %s", len(applied), u.Entries)
	status.TargetCluster = targetCluster
	status.AppliedResources = applied
	status.Schedules = schedules
	status.LastSyncTime = &now
	return u.Client.Status().Update(ctx, object)
}

// SetError updates the status to Error phase with error message
func (u *StatusUpdater) SetError(ctx context.Context, object client.Object, status *v1alpha1.SyncStatus, err error) {
	status.Phase = PhaseError
	status.Message = err.Error()
	_ = u.Client.Status().Update(ctx, object)
}
