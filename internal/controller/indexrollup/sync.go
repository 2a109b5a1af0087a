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

package indexrollup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"k8s.io/apimachinery/pkg/watch"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/apicaller"
	"index-management-operator.freepik.com/index-management-operator/internal/controller"
	"index-management-operator.freepik.com/index-management-operator/internal/globals"
	"index-management-operator.freepik.com/index-management-operator/internal/indexselect"
)

const (
	rollupJobsPath = "/_plugins/_rollup/jobs/%s"

	defaultPageSize = 1000
)

// Sync writes the rollup jobs of the resource to the target cluster, or removes them on deletion
func (r *IndexRollupReconciler) Sync(ctx context.Context, eventType watch.EventType, resource *v1alpha1.IndexRollup) (err error) {

	logger := log.FromContext(ctx)

	// Get the cluster associated to the resource
	if resource.Spec.ResourceSelector.Namespace == "" {
		resource.Spec.ResourceSelector.Namespace = resource.Namespace
	}

	// Build the cluster key for the pools
	clusterKey := globals.ClusterKey(&resource.Spec.ResourceSelector)

	// Reconnect on the next sync when the cluster is gone or the credentials were rotated
	defer func() {
		globals.ReleaseClusterConnection(ctx, clusterKey, err, r.ClusterConnectionsPool)
	}()

	if eventType == watch.Deleted {
		logger.Info(fmt.Sprintf("Deleting IndexRollup %s/%s", resource.Namespace, resource.Name))

		connection, err := globals.GetOrCreateClusterConnection(ctx, clusterKey, &resource.Spec.ResourceSelector, r.ClusterConnectionsPool)
		if err != nil {
			logger.Error(err, "Failed to get cluster connection for deletion")
			return err
		}

		// Jobs can only exist on OpenSearch, nothing to clean elsewhere
		if !connection.IsOpenSearch() {
			return nil
		}

		jobIDs := map[string]bool{}
		for jobID := range resource.Spec.Jobs {
			jobIDs[jobID] = true
		}
		for _, jobID := range resource.Status.AppliedResources {
			jobIDs[jobID] = true
		}

		for jobID := range jobIDs {
			if err := r.deleteRollupJob(ctx, connection.Caller, jobID); err != nil {
				logger.Error(err, fmt.Sprintf("Failed to delete rollup job %s", jobID))
				return err
			}
		}

		return nil
	}

	logger.Info(fmt.Sprintf("Syncing IndexRollup %s/%s", resource.Namespace, resource.Name))

	// Set status to Syncing at the beginning
	r.statusUpdater().SetSyncing(ctx, resource, &resource.Status.SyncStatus)

	// Step 1: Resolve schedules and check the indices of every job before touching the cluster
	schedules := make(map[string]*controller.ResolvedSchedule, len(resource.Spec.Jobs))
	for jobID, job := range resource.Spec.Jobs {
		schedules[jobID], err = controller.ResolveSchedule(&job.Schedule)
		if err != nil {
			err = &controller.InvalidScheduleError{Name: jobID, Err: err}
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}

		if indexselect.Overlaps(job.SourceIndex, job.TargetIndex) {
			err = fmt.Errorf("target index %s of rollup job %s overlaps its source index %s", job.TargetIndex, jobID, job.SourceIndex)
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}
	}

	// Step 2: Get or create the cluster connection
	connection, err := globals.GetOrCreateClusterConnection(ctx, clusterKey, &resource.Spec.ResourceSelector, r.ClusterConnectionsPool)
	if err != nil {
		logger.Error(err, "Failed to get or create cluster connection")
		r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, fmt.Errorf("failed to connect to cluster: %w", err))
		return err
	}

	logger.Info(fmt.Sprintf("Cluster connection established for %s (type: %s, version: %s)", clusterKey, connection.ClusterType, connection.Version))

	// Validate cluster type - index rollups are an OpenSearch plugin
	if !connection.IsOpenSearch() {
		err = fmt.Errorf("index rollup jobs are only available in OpenSearch. Elasticsearch rollups are deprecated in favour of downsampling and are not managed by this resource")
		logger.Error(err, "Incompatible cluster type for IndexRollup")
		r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
		return err
	}

	// Step 3: Sources must address existing data and targets must be plain indices
	options, err := indexselect.List(ctx, connection.Caller)
	if err != nil {
		logger.Error(err, "Failed to list cluster indices")
		r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
		return err
	}
	for jobID, job := range resource.Spec.Jobs {
		if len(indexselect.Matching(options, job.SourceIndex, job.TargetIndex)) == 0 {
			err = fmt.Errorf("source index %s of rollup job %s matches no index", job.SourceIndex, jobID)
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}
		if option, exists := indexselect.Find(options, job.TargetIndex); exists && option.Kind != indexselect.KindIndex {
			err = fmt.Errorf("target index %s of rollup job %s is an existing %s", job.TargetIndex, jobID, option.Kind)
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}
	}

	// Step 4: Delete jobs that are no longer desired
	for _, jobID := range resource.Status.AppliedResources {
		if _, desired := resource.Spec.Jobs[jobID]; desired {
			continue
		}
		logger.Info(fmt.Sprintf("Rollup job %s is no longer desired, deleting from cluster", jobID))
		if err := r.deleteRollupJob(ctx, connection.Caller, jobID); err != nil {
			logger.Error(err, fmt.Sprintf("Failed to delete rollup job %s", jobID))
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}
	}

	// Step 5: Apply all desired jobs (idempotent)
	jobIDs := make([]string, 0, len(resource.Spec.Jobs))
	for jobID := range resource.Spec.Jobs {
		jobIDs = append(jobIDs, jobID)
	}
	sort.Strings(jobIDs)

	now := time.Now()
	appliedJobs := make([]string, 0, len(jobIDs))
	scheduleStatuses := make([]v1alpha1.ScheduleStatus, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		job := resource.Spec.Jobs[jobID]
		schedule := schedules[jobID]

		logger.Info(fmt.Sprintf("Processing rollup job %s with schedule %q (%s)", jobID, schedule.Expression, schedule.Timezone))

		if err := r.applyRollupJob(ctx, connection.Caller, jobID, &job, schedule); err != nil {
			logger.Error(err, fmt.Sprintf("Failed to apply rollup job %s", jobID))
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}

		appliedJobs = append(appliedJobs, jobID)
		scheduleStatuses = append(scheduleStatuses, schedule.Status(jobID, now))
	}

	// Step 6: Update the Status with the new list of applied jobs
	targetCluster := fmt.Sprintf("%s/%s", resource.Spec.ResourceSelector.Namespace, resource.Spec.ResourceSelector.Name)
	if err := r.statusUpdater().SetReady(ctx, resource, &resource.Status.SyncStatus, targetCluster, appliedJobs, scheduleStatuses); err != nil {
		logger.Error(err, "Failed to update IndexRollup status")
		return err
	}

	logger.Info(fmt.Sprintf("IndexRollup %s/%s synced successfully", resource.Namespace, resource.Name))

	return nil
}

// applyRollupJob creates a rollup job, or updates it using its sequence number
func (r *IndexRollupReconciler) applyRollupJob(ctx context.Context, caller *apicaller.Caller, jobID string, job *v1alpha1.RollupJob, schedule *controller.ResolvedSchedule) error {
	logger := log.FromContext(ctx)

	body, err := rollupJobBody(job, schedule)
	if err != nil {
		return fmt.Errorf("failed to build rollup job %s: %w", jobID, err)
	}

	path := fmt.Sprintf(rollupJobsPath, jobID)
	version, err := caller.Version(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to get rollup job %s: %w", jobID, err)
	}

	request := apicaller.Request{Method: http.MethodPut, Path: path, Body: body}
	if version != nil {
		logger.Info(fmt.Sprintf("Updating rollup job %s (seq_no %d)", jobID, version.SeqNo))
		request.Query = version.Query()
	}

	if _, err := caller.Call(ctx, request); err != nil {
		return fmt.Errorf("failed to apply rollup job %s: %w", jobID, err)
	}
	return nil
}

// deleteRollupJob removes a rollup job, treating a missing job as deleted
func (r *IndexRollupReconciler) deleteRollupJob(ctx context.Context, caller *apicaller.Caller, jobID string) error {
	logger := log.FromContext(ctx)

	found, err := caller.Delete(ctx, fmt.Sprintf(rollupJobsPath, jobID))
	if err != nil {
		return fmt.Errorf("failed to delete rollup job: %w", err)
	}
	if !found {
		logger.Info(fmt.Sprintf("Rollup job %s not found in OpenSearch (already deleted)", jobID))
	}
	return nil
}

func rollupJobBody(job *v1alpha1.RollupJob, schedule *controller.ResolvedSchedule) (map[string]interface{}, error) {
	enabled := true
	if job.Enabled != nil {
		enabled = *job.Enabled
	}

	pageSize := job.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var dimensions interface{}
	if err := json.Unmarshal(job.Dimensions.Raw, &dimensions); err != nil {
		return nil, fmt.Errorf("failed to decode dimensions: %w", err)
	}

	metrics := interface{}([]interface{}{})
	if job.Metrics != nil && len(job.Metrics.Raw) > 0 {
		if err := json.Unmarshal(job.Metrics.Raw, &metrics); err != nil {
			return nil, fmt.Errorf("failed to decode metrics: %w", err)
		}
	}

	rollup := map[string]interface{}{
		"source_index": job.SourceIndex,
		"target_index": job.TargetIndex,
		"schedule": map[string]interface{}{
			"cron": map[string]interface{}{
				"expression": schedule.Expression,
				"timezone":   schedule.Timezone,
			},
		},
		"description": job.Description,
		"enabled":     enabled,
		"page_size":   pageSize,
		"delay":       0,
		"continuous":  job.Continuous,
		"dimensions":  dimensions,
		"metrics":     metrics,
	}

	return map[string]interface{}{"rollup": rollup}, nil
}
