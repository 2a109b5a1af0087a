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

// IndexRollupReconciler reconciles an IndexRollup object
type IndexRollupReconciler struct {
	client.Client
	Scheme                 *runtime.Scheme
	ClusterConnectionsPool *pools.ClusterConnectionsStore
}

// +kubebuilder:rbac:groups=index-management-operator.freepik.com,resources=indexrollups,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=index-management-operator.freepik.com,resources=indexrollups/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=index-management-operator.freepik.com,resources=indexrollups/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
// +kubebuilder:rbac:groups=elasticsearch.k8s.elastic.co,resources=elasticsearches,verbs=get;list;watch

// Reconcile keeps the rollup jobs of an IndexRollup resource in sync with the target cluster
func (r *IndexRollupReconciler) Reconcile(ctx context.Context, req ctrl.Request) (result ctrl.Result, err error) {
	logger := logf.FromContext(ctx)

	// 1. Get the content of the resource
	indexRollupResource := &v1alpha1.IndexRollup{}
	err = r.Get(ctx, req.NamespacedName, indexRollupResource)

	// 2. Check existence on the cluster
	if err != nil {

		// 2.1 It does NOT exist: manage removal
		if err = client.IgnoreNotFound(err); err == nil {
			logger.Info(fmt.Sprintf(controller.ResourceNotFoundError, controller.IndexRollupResourceType, req.NamespacedName))
			return result, err
		}

		// 2.2 Failed to get the resource, requeue the request
		logger.Info(fmt.Sprintf(controller.ResourceRetrievalError, controller.IndexRollupResourceType, req.NamespacedName, err.Error()))
		return result, err
	}

	// 3. Check if the IndexRollup instance is marked to be deleted
	if !indexRollupResource.DeletionTimestamp.IsZero() {
		if controllerutil.ContainsFinalizer(indexRollupResource, controller.ResourceFinalizer) {

			// 3.1 Delete the rollup jobs associated with the IndexRollup
			err = r.Sync(ctx, watch.Deleted, indexRollupResource)
			if err != nil {
				logger.Info(fmt.Sprintf(controller.SyncTargetError, controller.IndexRollupResourceType, req.NamespacedName, err.Error()))
				return result, err
			}

			// 3.2 Remove the finalizers on the CR
			controllerutil.RemoveFinalizer(indexRollupResource, controller.ResourceFinalizer)
			err = r.Update(ctx, indexRollupResource)
			if err != nil {
				logger.Info(fmt.Sprintf(controller.ResourceFinalizersUpdateError, controller.IndexRollupResourceType, req.NamespacedName, err.Error()))
			}
		}

		result = ctrl.Result{}
		err = nil
		return result, err
	}

	// 4. Add finalizer to the IndexRollup CR
	if !controllerutil.ContainsFinalizer(indexRollupResource, controller.ResourceFinalizer) {
		controllerutil.AddFinalizer(indexRollupResource, controller.ResourceFinalizer)
		err = r.Update(ctx, indexRollupResource)
		if err != nil {
			return result, err
		}
	}

	// 5. Update the status before the requeue
	defer func() {
		statusErr := r.Status().Update(ctx, indexRollupResource)
		if statusErr != nil {
			logger.Info(fmt.Sprintf(controller.ResourceConditionUpdateError, controller.IndexRollupResourceType, req.NamespacedName, statusErr.Error()))
		}
	}()

	// 6. Schedule periodical request
	syncInterval := indexRollupResource.Spec.SyncInterval
	if syncInterval == "" {
		syncInterval = controller.DefaultSyncInterval
	}
	requeueTime, err := time.ParseDuration(syncInterval)
	if err != nil {
		logger.Info(fmt.Sprintf(controller.ResourceSyncTimeRetrievalError, controller.IndexRollupResourceType, req.NamespacedName, err.Error()))
		return result, err
	}
	result = ctrl.Result{
		RequeueAfter: requeueTime,
	}

	// 7. Sync the rollup jobs
	err = r.Sync(ctx, watch.Modified, indexRollupResource)
	if err != nil {
		controller.UpdateConditionFailure(&indexRollupResource.Status.SyncStatus, err)
		logger.Info(fmt.Sprintf(controller.SyncTargetError, controller.IndexRollupResourceType, req.NamespacedName, err.Error()))
		return result, err
	}

	// 8. Success, update the status
	controller.UpdateConditionSuccess(&indexRollupResource.Status.SyncStatus)

	return result, err
}

func (r *IndexRollupReconciler) statusUpdater() *controller.StatusUpdater {
	return &controller.StatusUpdater{Client: r.Client, Entries: "rollup jobs"}
}

// SetupWithManager sets up the controller with the Manager.
func (r *IndexRollupReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.IndexRollup{}).
		Named("indexrollup").
		WithEventFilter(predicate.GenerationChangedPredicate{}).
		Complete(r)
}
