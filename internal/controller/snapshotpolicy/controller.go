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
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/watch"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/controller"
	"index-management-operator.freepik.com/index-management-operator/internal/pools"
)

// SnapshotPolicyReconciler reconciles a SnapshotPolicy object
type SnapshotPolicyReconciler struct {
	client.Client
	Scheme                 *runtime.Scheme
	ClusterConnectionsPool *pools.ClusterConnectionsStore
}

// +kubebuilder:rbac:groups=index-management-operator.freepik.com,resources=snapshotpolicies,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=index-management-operator.freepik.com,resources=snapshotpolicies/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=index-management-operator.freepik.com,resources=snapshotpolicies/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
// +kubebuilder:rbac:groups=elasticsearch.k8s.elastic.co,resources=elasticsearches,verbs=get;list;watch

// Reconcile keeps the snapshot policies of a SnapshotPolicy resource in sync with the target cluster
func (r *SnapshotPolicyReconciler) Reconcile(ctx context.Context, req ctrl.Request) (result ctrl.Result, err error) {
	logger := logf.FromContext(ctx)

	// 1. Get the content of the resource
	snapshotPolicyResource := &v1alpha1.SnapshotPolicy{}
	err = r.Get(ctx, req.NamespacedName, snapshotPolicyResource)

	// 2. Check existence on the cluster
	if err != nil {

		// 2.1 It does NOT exist: manage removal
		if err = client.IgnoreNotFound(err); err == nil {
			logger.Info(fmt.Sprintf(controller.ResourceNotFoundError, controller.SnapshotPolicyResourceType, req.NamespacedName))
			return result, err
		}

		// 2.2 Failed to get the resource, requeue the request
		logger.Info(fmt.Sprintf(controller.ResourceRetrievalError, controller.SnapshotPolicyResourceType, req.NamespacedName, err.Error()))
		return result, err
	}

	// 3. Check if the SnapshotPolicy instance is marked to be deleted
	if !snapshotPolicyResource.DeletionTimestamp.IsZero() {
		if controllerutil.ContainsFinalizer(snapshotPolicyResource, controller.ResourceFinalizer) {

			// 3.1 Delete the policies associated with the SnapshotPolicy
			err = r.Sync(ctx, watch.Deleted, snapshotPolicyResource)
			if err != nil {
				logger.Info(fmt.Sprintf(controller.SyncTargetError, controller.SnapshotPolicyResourceType, req.NamespacedName, err.Error()))
				return result, err
			}

			// 3.2 Remove the finalizers on the CR
			controllerutil.RemoveFinalizer(snapshotPolicyResource, controller.ResourceFinalizer)
			err = r.Update(ctx, snapshotPolicyResource)
			if err != nil {
				logger.Info(fmt.Sprintf(controller.ResourceFinalizersUpdateError, controller.SnapshotPolicyResourceType, req.NamespacedName, err.Error()))
			}
		}

		result = ctrl.Result{}
		err = nil
		return result, err
	}

	// 4. Add finalizer to the SnapshotPolicy CR
	if !controllerutil.ContainsFinalizer(snapshotPolicyResource, controller.ResourceFinalizer) {
		controllerutil.AddFinalizer(snapshotPolicyResource, controller.ResourceFinalizer)
		err = r.Update(ctx, snapshotPolicyResource)
		if err != nil {
			return result, err
		}
	}

	// 5. Update the status before the requeue
	defer func() {
		statusErr := r.Status().Update(ctx, snapshotPolicyResource)
		if statusErr != nil {
			logger.Info(fmt.Sprintf(controller.ResourceConditionUpdateError, controller.SnapshotPolicyResourceType, req.NamespacedName, statusErr.Error()))
		}
	}()

	// 6. Schedule periodical request
	syncInterval := snapshotPolicyResource.Spec.SyncInterval
	if syncInterval == "" {
		syncInterval = controller.DefaultSyncInterval
	}
	requeueTime, err := time.ParseDuration(syncInterval)
	if err != nil {
		logger.Info(fmt.Sprintf(controller.ResourceSyncTimeRetrievalError, controller.SnapshotPolicyResourceType, req.NamespacedName, err.Error()))
		return result, err
	}
	result = ctrl.Result{
		RequeueAfter: requeueTime,
	}

	// 7. Sync the snapshot policies
	err = r.Sync(ctx, watch.Modified, snapshotPolicyResource)
	if err != nil {
		controller.UpdateConditionFailure(&snapshotPolicyResource.Status.SyncStatus, err)
		logger.Info(fmt.Sprintf(controller.SyncTargetError, controller.SnapshotPolicyResourceType, req.NamespacedName, err.Error()))
		return result, err
	}

	// 8. Success, update the status
	controller.UpdateConditionSuccess(&snapshotPolicyResource.Status.SyncStatus)

	return result, err
}

func (r *SnapshotPolicyReconciler) statusUpdater() *controller.StatusUpdater {
	return &controller.StatusUpdater{Client: r.Client, Entries: "snapshot policies"}
}

// SetupWithManager sets up the controller with the Manager.
func (r *SnapshotPolicyReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.SnapshotPolicy{}).
		Named("snapshotpolicy").
		WithEventFilter(predicate.GenerationChangedPredicate{}).
		Complete(r)
}
