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

package snapshotpolicy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/watch"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/apicaller"
	"index-management-operator.freepik.com/index-management-operator/internal/controller"
	"index-management-operator.freepik.com/index-management-operator/internal/cron"
	"index-management-operator.freepik.com/index-management-operator/internal/globals"
	"index-management-operator.freepik.com/index-management-operator/internal/pools"
)

const openSearchPoliciesPath = "/_plugins/_sm/policies/%s"

// policySchedules holds the resolved schedules of a single policy
type policySchedules struct {
	creation *controller.ResolvedSchedule
	deletion *controller.ResolvedSchedule
}

// Sync writes the snapshot policies of the resource to the target cluster, or removes them on deletion
func (r *SnapshotPolicyReconciler) Sync(ctx context.Context, eventType watch.EventType, resource *v1alpha1.SnapshotPolicy) (err error) {

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
		logger.Info(fmt.Sprintf("Deleting SnapshotPolicy %s/%s", resource.Namespace, resource.Name))

		connection, err := globals.GetOrCreateClusterConnection(ctx, clusterKey, &resource.Spec.ResourceSelector, r.ClusterConnectionsPool)
		if err != nil {
			logger.Error(err, "Failed to get cluster connection for deletion")
			return err
		}

		// Remove what is in the spec and whatever was applied before it changed
		policyNames := map[string]bool{}
		for policyName := range resource.Spec.Policies {
			policyNames[policyName] = true
		}
		for _, policyName := range resource.Status.AppliedResources {
			policyNames[policyName] = true
		}

		for policyName := range policyNames {
			if err := r.deletePolicy(ctx, connection, policyName); err != nil {
				logger.Error(err, fmt.Sprintf("Failed to delete snapshot policy %s", policyName))
				return err
			}
		}

		return nil
	}

	logger.Info(fmt.Sprintf("Syncing SnapshotPolicy %s/%s", resource.Namespace, resource.Name))

	// Set status to Syncing at the beginning
	r.statusUpdater().SetSyncing(ctx, resource, &resource.Status.SyncStatus)

	// Step 1: Resolve every schedule before touching the cluster
	schedules := make(map[string]policySchedules, len(resource.Spec.Policies))
	for policyName, policy := range resource.Spec.Policies {
		resolved := policySchedules{}

		resolved.creation, err = controller.ResolveSchedule(&policy.Schedule)
		if err != nil {
			err = &controller.InvalidScheduleError{Name: policyName, Err: err}
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}

		if policy.DeletionSchedule != nil {
			resolved.deletion, err = controller.ResolveSchedule(policy.DeletionSchedule)
			if err != nil {
				err = &controller.InvalidScheduleError{Name: policyName + " deletion", Err: err}
				r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
				return err
			}
		}

		schedules[policyName] = resolved
	}

	// Step 2: Get or create the cluster connection
	connection, err := globals.GetOrCreateClusterConnection(ctx, clusterKey, &resource.Spec.ResourceSelector, r.ClusterConnectionsPool)
	if err != nil {
		logger.Error(err, "Failed to get or create cluster connection")
		r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, fmt.Errorf("failed to connect to cluster: %w", err))
		return err
	}

	logger.Info(fmt.Sprintf("Cluster connection established for %s (type: %s, version: %s)", clusterKey, connection.ClusterType, connection.Version))

	// Step 3: Delete policies that are no longer desired
	for _, policyName := range resource.Status.AppliedResources {
		if _, desired := resource.Spec.Policies[policyName]; desired {
			continue
		}
		logger.Info(fmt.Sprintf("Policy %s is no longer desired, deleting from cluster", policyName))
		if err := r.deletePolicy(ctx, connection, policyName); err != nil {
			logger.Error(err, fmt.Sprintf("Failed to delete snapshot policy %s", policyName))
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}
	}

	// Step 4: Apply all desired policies (idempotent)
	policyNames := make([]string, 0, len(resource.Spec.Policies))
	for policyName := range resource.Spec.Policies {
		policyNames = append(policyNames, policyName)
	}
	sort.Strings(policyNames)

	now := time.Now()
	appliedPolicies := make([]string, 0, len(policyNames))
	scheduleStatuses := make([]v1alpha1.ScheduleStatus, 0, len(policyNames))
	for _, policyName := range policyNames {
		policy := resource.Spec.Policies[policyName]
		resolved := schedules[policyName]

		logger.Info(fmt.Sprintf("Processing snapshot policy %s with schedule %q (%s)", policyName, resolved.creation.Expression, resolved.creation.Timezone))

		if connection.IsOpenSearch() {
			err = r.applyOpenSearchPolicy(ctx, connection.Caller, policyName, &policy, resolved)
		} else {
			err = r.applyElasticsearchPolicy(ctx, connection.Elasticsearch, policyName, &policy, resolved)
		}
		if err != nil {
			logger.Error(err, fmt.Sprintf("Failed to apply snapshot policy %s", policyName))
			r.statusUpdater().SetError(ctx, resource, &resource.Status.SyncStatus, err)
			return err
		}

		logger.Info(fmt.Sprintf("Snapshot policy %s applied successfully", policyName))
		appliedPolicies = append(appliedPolicies, policyName)
		scheduleStatuses = append(scheduleStatuses, resolved.creation.Status(policyName, now))
	}

	// Step 5: Update the Status with the new list of applied policies
	targetCluster := fmt.Sprintf("%s/%s", resource.Spec.ResourceSelector.Namespace, resource.Spec.ResourceSelector.Name)
	if err := r.statusUpdater().SetReady(ctx, resource, &resource.Status.SyncStatus, targetCluster, appliedPolicies, scheduleStatuses); err != nil {
		logger.Error(err, "Failed to update SnapshotPolicy status")
		return err
	}

	logger.Info(fmt.Sprintf("SnapshotPolicy %s/%s synced successfully", resource.Namespace, resource.Name))

	return nil
}

// deletePolicy removes a snapshot policy from whichever API the cluster exposes
func (r *SnapshotPolicyReconciler) deletePolicy(ctx context.Context, connection *pools.ClusterConnection, policyName string) error {
	logger := log.FromContext(ctx)

	if connection.IsOpenSearch() {
		found, err := connection.Caller.Delete(ctx, fmt.Sprintf(openSearchPoliciesPath, policyName))
		if err != nil {
			return fmt.Errorf("failed to delete snapshot policy: %w", err)
		}
		if !found {
			logger.Info(fmt.Sprintf("Snapshot policy %s not found in OpenSearch (already deleted)", policyName))
		}
		return nil
	}

	return r.deleteElasticsearchPolicy(ctx, connection.Elasticsearch, policyName)
}

// applyElasticsearchPolicy creates or updates an SLM policy
func (r *SnapshotPolicyReconciler) applyElasticsearchPolicy(ctx context.Context, esClient *elasticsearch.Client, policyName string, policy *v1alpha1.SnapshotPolicyDefinition, schedules policySchedules) error {
	logger := log.FromContext(ctx)

	if schedules.creation.Timezone != cron.DefaultTimezone {
		logger.Info(fmt.Sprintf("SLM evaluates schedules in UTC, ignoring timezone %s of policy %s", schedules.creation.Timezone, policyName))
	}

	body, err := elasticsearchPolicyBody(policyName, policy, schedules.creation)
	if err != nil {
		return err
	}

	policyJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}

	res, err := esClient.SlmPutLifecycle(
		policyName,
		esClient.SlmPutLifecycle.WithBody(bytes.NewReader(policyJSON)),
		esClient.SlmPutLifecycle.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to apply snapshot lifecycle policy: %w: %w", apicaller.ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return slmError(http.MethodPut, policyName, res.StatusCode, res.Body)
	}

	return nil
}

// deleteElasticsearchPolicy deletes an SLM policy
func (r *SnapshotPolicyReconciler) deleteElasticsearchPolicy(ctx context.Context, esClient *elasticsearch.Client, policyName string) error {
	logger := log.FromContext(ctx)

	res, err := esClient.SlmDeleteLifecycle(
		policyName,
		esClient.SlmDeleteLifecycle.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot lifecycle policy: %w: %w", apicaller.ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// If the policy doesn't exist (404), consider it already deleted
		if res.StatusCode == http.StatusNotFound {
			logger.Info(fmt.Sprintf("Snapshot lifecycle policy %s not found in Elasticsearch (already deleted)", policyName))
			return nil
		}
		return slmError(http.MethodDelete, policyName, res.StatusCode, res.Body)
	}

	return nil
}

// applyOpenSearchPolicy creates a Snapshot Management policy, or updates it using its sequence number
func (r *SnapshotPolicyReconciler) applyOpenSearchPolicy(ctx context.Context, caller *apicaller.Caller, policyName string, policy *v1alpha1.SnapshotPolicyDefinition, schedules policySchedules) error {
	logger := log.FromContext(ctx)

	body, err := openSearchPolicyBody(policyName, policy, schedules)
	if err != nil {
		return err
	}

	path := fmt.Sprintf(openSearchPoliciesPath, policyName)
	version, err := caller.Version(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to get snapshot policy %s: %w", policyName, err)
	}

	request := apicaller.Request{Method: http.MethodPost, Path: path, Body: body}
	if version != nil {
		logger.Info(fmt.Sprintf("Updating snapshot policy %s (seq_no %d)", policyName, version.SeqNo))
		request.Method = http.MethodPut
		request.Query = version.Query()
	}

	if _, err := caller.Call(ctx, request); err != nil {
		return fmt.Errorf("failed to apply snapshot policy %s: %w", policyName, err)
	}
	return nil
}

// slmError reports a failed SLM call the same way apicaller reports failed passthrough calls
func slmError(method, policyName string, statusCode int, body io.Reader) error {
	bodyBytes, _ := io.ReadAll(body)
	return &apicaller.APIError{
		Method:     method,
		Path:       fmt.Sprintf("/_slm/policy/%s", policyName),
		StatusCode: statusCode,
		Body:       string(bodyBytes),
	}
}

func elasticsearchPolicyBody(policyName string, policy *v1alpha1.SnapshotPolicyDefinition, creation *controller.ResolvedSchedule) (map[string]interface{}, error) {
	schedule, err := cron.Quartz(creation.Expression)
	if err != nil {
		return nil, &controller.InvalidScheduleError{Name: policyName, Err: err}
	}

	snapshotName := policy.SnapshotName
	if snapshotName == "" {
		snapshotName = fmt.Sprintf("<%s-{now/d}>", policyName)
	}

	config, err := decodeObject(policy.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config of policy %s: %w", policyName, err)
	}
	if len(policy.Indices) > 0 {
		config["indices"] = policy.Indices
	}

	body := map[string]interface{}{
		"schedule":   schedule,
		"name":       snapshotName,
		"repository": policy.Repository,
		"config":     config,
	}

	if policy.Retention != nil {
		retention, err := decodeObject(policy.Retention)
		if err != nil {
			return nil, fmt.Errorf("failed to decode retention of policy %s: %w", policyName, err)
		}
		body["retention"] = retention
	}

	return body, nil
}

func openSearchPolicyBody(policyName string, policy *v1alpha1.SnapshotPolicyDefinition, schedules policySchedules) (map[string]interface{}, error) {
	snapshotConfig, err := decodeObject(policy.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config of policy %s: %w", policyName, err)
	}
	snapshotConfig["repository"] = policy.Repository
	if len(policy.Indices) > 0 {
		snapshotConfig["indices"] = strings.Join(policy.Indices, ",")
	}

	body := map[string]interface{}{
		"creation": map[string]interface{}{
			"schedule": cronBlock(schedules.creation),
		},
		"snapshot_config": snapshotConfig,
	}
	if policy.Description != "" {
		body["description"] = policy.Description
	}

	if policy.Retention != nil {
		condition, err := decodeObject(policy.Retention)
		if err != nil {
			return nil, fmt.Errorf("failed to decode retention of policy %s: %w", policyName, err)
		}
		deletion := map[string]interface{}{
			"condition": condition,
		}
		if schedules.deletion != nil {
			deletion["schedule"] = cronBlock(schedules.deletion)
		}
		body["deletion"] = deletion
	}

	return body, nil
}

func cronBlock(schedule *controller.ResolvedSchedule) map[string]interface{} {
	return map[string]interface{}{
		"cron": map[string]interface{}{
			"expression": schedule.Expression,
			"timezone":   schedule.Timezone,
		},
	}
}

// decodeObject returns the JSON object held by raw, or an empty object when raw is nil
func decodeObject(raw *apiextensionsv1.JSON) (map[string]interface{}, error) {
	object := map[string]interface{}{}
	if raw == nil || len(raw.Raw) == 0 {
		return object, nil
	}

	objectJSON, err := raw.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(objectJSON, &object); err != nil {
		return nil, err
	}
	return object, nil
}
