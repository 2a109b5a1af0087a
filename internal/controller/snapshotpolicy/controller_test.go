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
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	kubefake "k8s.io/client-go/kubernetes/fake"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/controller"
	"index-management-operator.freepik.com/index-management-operator/internal/globals"
	"index-management-operator.freepik.com/index-management-operator/internal/pools"
)

// fakeCluster answers the handful of endpoints the reconciler uses
type fakeCluster struct {
	mu           sync.Mutex
	distribution string
	unauthorized bool
	existing     map[string]bool
	requests     []string
	bodies       map[string]string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	call := fmt.Sprintf("%s %s", r.Method, r.URL.RequestURI())
	f.requests = append(f.requests, call)
	if len(body) > 0 {
		f.bodies[fmt.Sprintf("%s %s", r.Method, r.URL.Path)] = string(body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Elastic-Product", "Elasticsearch")

	switch {
	case r.URL.Path == "/":
		if f.distribution == "" {
			_, _ = w.Write([]byte(`{"version":{"number":"8.15.0"}}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"version":{"distribution":%q,"number":"2.17.0"}}`, f.distribution)
	case f.unauthorized:
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	case r.Method == http.MethodGet && f.existing[r.URL.Path]:
		_, _ = w.Write([]byte(`{"_id":"policy","_seq_no":7,"_primary_term":1}`))
	case r.Method == http.MethodGet || r.Method == http.MethodDelete && !f.existing[r.URL.Path]:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	default:
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	}
}

func (f *fakeCluster) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.requests...)
}

func (f *fakeCluster) Body(call string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[call]
}

var _ = Describe("SnapshotPolicyReconciler", func() {
	var (
		ctx        context.Context
		cluster    *fakeCluster
		server     *httptest.Server
		scheme     *runtime.Scheme
		resource   *v1alpha1.SnapshotPolicy
		k8sClient  client.Client
		reconciler *SnapshotPolicyReconciler
		key        types.NamespacedName
	)

	build := func() {
		k8sClient = fake.NewClientBuilder().
			WithScheme(scheme).
			WithObjects(resource).
			WithStatusSubresource(resource).
			Build()
		reconciler = &SnapshotPolicyReconciler{
			Client:                 k8sClient,
			Scheme:                 scheme,
			ClusterConnectionsPool: pools.NewClusterConnectionsStore(),
		}
	}

	reconcile := func() (ctrl.Result, error) {
		return reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: key})
	}

	fetch := func() *v1alpha1.SnapshotPolicy {
		current := &v1alpha1.SnapshotPolicy{}
		Expect(k8sClient.Get(ctx, key, current)).To(Succeed())
		return current
	}

	BeforeEach(func() {
		ctx = context.Background()
		cluster = &fakeCluster{distribution: "opensearch", existing: map[string]bool{}, bodies: map[string]string{}}
		server = httptest.NewServer(cluster)

		scheme = runtime.NewScheme()
		Expect(clientgoscheme.AddToScheme(scheme)).To(Succeed())
		Expect(v1alpha1.AddToScheme(scheme)).To(Succeed())

		globals.Application.KubeRawCoreClient = kubefake.NewSimpleClientset(&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "cluster-credentials", Namespace: "logging"},
			Data:       map[string][]byte{"password": []byte("s3cr3t")},
		})

		key = types.NamespacedName{Name: "backups", Namespace: "logging"}
		resource = &v1alpha1.SnapshotPolicy{
			ObjectMeta: metav1.ObjectMeta{Name: key.Name, Namespace: key.Namespace},
			Spec: v1alpha1.SnapshotPolicySpec{
				ResourceSelector: v1alpha1.ResourceSelector{
					Name:              "main",
					Endpoint:          server.URL,
					Username:          "admin",
					PasswordSecretRef: &v1alpha1.SecretKeySelector{Name: "cluster-credentials", Key: "password"},
				},
				Policies: map[string]v1alpha1.SnapshotPolicyDefinition{
					"nightly": {
						Description: "Nightly snapshots",
						Repository:  "s3-backups",
						Indices:     []string{"logs-*", "metrics-*"},
						Schedule: v1alpha1.CronSchedule{
							Frequency: "daily",
							Hour:      ptr.To(1),
							Minute:    ptr.To(30),
							Timezone:  "Europe/Madrid",
						},
						Retention: &apiextensionsv1.JSON{Raw: []byte(`{"max_count":7}`)},
					},
				},
			},
		}
	})

	AfterEach(func() {
		server.Close()
	})

	Context("against OpenSearch", func() {
		It("creates the policy and reports its schedule", func() {
			build()

			result, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(Equal(10 * time.Second))

			Expect(cluster.Requests()).To(ContainElements(
				"GET /_plugins/_sm/policies/nightly",
				"POST /_plugins/_sm/policies/nightly",
			))
			Expect(cluster.Body("POST /_plugins/_sm/policies/nightly")).To(MatchJSON(`{
				"description": "Nightly snapshots",
				"creation": {"schedule": {"cron": {"expression": "30 1 * * *", "timezone": "Europe/Madrid"}}},
				"deletion": {"condition": {"max_count": 7}},
				"snapshot_config": {"repository": "s3-backups", "indices": "logs-*,metrics-*"}
			}`))

			current := fetch()
			Expect(current.Finalizers).To(ContainElement(controller.ResourceFinalizer))
			Expect(current.Status.Phase).To(Equal(controller.PhaseReady))
			Expect(current.Status.TargetCluster).To(Equal("logging/main"))
			Expect(current.Status.AppliedResources).To(Equal([]string{"nightly"}))
			Expect(current.Status.Schedules).To(HaveLen(1))
			Expect(current.Status.Schedules[0].Expression).To(Equal("30 1 * * *"))
			Expect(current.Status.Schedules[0].Frequency).To(Equal("daily"))
			Expect(current.Status.Schedules[0].Description).To(Equal("1:30 (Europe/Madrid)"))
			Expect(current.Status.Schedules[0].NextRun).NotTo(BeNil())

			condition := meta.FindStatusCondition(current.Status.Conditions, globals.ConditionTypeResourceSynced)
			Expect(condition).NotTo(BeNil())
			Expect(condition.Status).To(Equal(metav1.ConditionTrue))
		})

		It("updates existing policies with their sequence number", func() {
			cluster.existing["/_plugins/_sm/policies/nightly"] = true
			build()

			_, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(cluster.Requests()).To(ContainElement("PUT /_plugins/_sm/policies/nightly?if_primary_term=1&if_seq_no=7"))
		})

		It("prunes policies removed from the spec", func() {
			resource.Status.AppliedResources = []string{"legacy", "nightly"}
			cluster.existing["/_plugins/_sm/policies/legacy"] = true
			build()

			_, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(cluster.Requests()).To(ContainElement("DELETE /_plugins/_sm/policies/legacy"))
			Expect(fetch().Status.AppliedResources).To(Equal([]string{"nightly"}))
		})

		It("removes every policy when the resource is deleted", func() {
			now := metav1.Now()
			resource.Finalizers = []string{controller.ResourceFinalizer}
			resource.DeletionTimestamp = &now
			resource.Status.AppliedResources = []string{"nightly", "legacy"}
			build()

			result, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(BeZero())
			Expect(cluster.Requests()).To(ContainElements(
				"DELETE /_plugins/_sm/policies/nightly",
				"DELETE /_plugins/_sm/policies/legacy",
			))

			err = k8sClient.Get(ctx, key, &v1alpha1.SnapshotPolicy{})
			Expect(apierrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Context("against Elasticsearch", func() {
		BeforeEach(func() {
			cluster.distribution = ""
		})

		It("writes an SLM policy with a Quartz schedule", func() {
			build()

			_, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(cluster.Body("PUT /_slm/policy/nightly")).To(MatchJSON(`{
				"schedule": "0 30 1 * * ?",
				"name": "<nightly-{now/d}>",
				"repository": "s3-backups",
				"config": {"indices": ["logs-*", "metrics-*"]},
				"retention": {"max_count": 7}
			}`))
			Expect(fetch().Status.Phase).To(Equal(controller.PhaseReady))
		})

		It("writes weekday ranges as Quartz day names", func() {
			policy := resource.Spec.Policies["nightly"]
			policy.Schedule = v1alpha1.CronSchedule{Expression: "0 2 * * 1-5"}
			resource.Spec.Policies["nightly"] = policy
			build()

			_, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(cluster.Body("PUT /_slm/policy/nightly")).To(ContainSubstring(`"schedule":"0 0 2 ? * MON-FRI"`))
		})

		It("rejects schedules Quartz cannot express", func() {
			policy := resource.Spec.Policies["nightly"]
			policy.Schedule = v1alpha1.CronSchedule{Expression: "0 2 1 * MON"}
			resource.Spec.Policies["nightly"] = policy
			build()

			_, err := reconcile()
			Expect(err).To(MatchError(ContainSubstring("invalid schedule for nightly")))
			Expect(cluster.Requests()).NotTo(ContainElement(HavePrefix("PUT /_slm/policy/nightly")))

			current := fetch()
			Expect(current.Status.Phase).To(Equal(controller.PhaseError))
			condition := meta.FindStatusCondition(current.Status.Conditions, globals.ConditionTypeResourceSynced)
			Expect(condition).NotTo(BeNil())
			Expect(condition.Reason).To(Equal(globals.ConditionReasonInvalidSchedule))
		})

		It("deletes SLM policies", func() {
			resource.Status.AppliedResources = []string{"legacy"}
			build()

			_, err := reconcile()
			Expect(err).NotTo(HaveOccurred())
			Expect(cluster.Requests()).To(ContainElement("DELETE /_slm/policy/legacy"))
		})
	})

	It("drops the pooled connection when the credentials are rejected", func() {
		build()

		_, err := reconcile()
		Expect(err).NotTo(HaveOccurred())
		_, pooled := reconciler.ClusterConnectionsPool.Get("logging_main")
		Expect(pooled).To(BeTrue())

		cluster.unauthorized = true
		_, err = reconcile()
		Expect(err).To(HaveOccurred())

		_, pooled = reconciler.ClusterConnectionsPool.Get("logging_main")
		Expect(pooled).To(BeFalse())
		Expect(fetch().Status.Phase).To(Equal(controller.PhaseError))
	})

	It("rejects unresolvable schedules without calling the cluster", func() {
		policy := resource.Spec.Policies["nightly"]
		policy.Schedule = v1alpha1.CronSchedule{Frequency: "biweekly"}
		resource.Spec.Policies["nightly"] = policy
		build()

		_, err := reconcile()
		Expect(err).To(MatchError(ContainSubstring("invalid schedule for nightly")))
		Expect(cluster.Requests()).To(BeEmpty())

		current := fetch()
		Expect(current.Status.Phase).To(Equal(controller.PhaseError))
		condition := meta.FindStatusCondition(current.Status.Conditions, globals.ConditionTypeResourceSynced)
		Expect(condition).NotTo(BeNil())
		Expect(condition.Status).To(Equal(metav1.ConditionFalse))
		Expect(condition.Reason).To(Equal(globals.ConditionReasonInvalidSchedule))
	})
})
