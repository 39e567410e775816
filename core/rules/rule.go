// Package rules maps declared Terraform resources to billable usage.
//
// Each supported resource type has a Rule that decodes the resource's values,
// picks SKUs from declarative price sheets and records usage into a ledger.
// Rules are stateless; everything they need arrives through Env.
package rules

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/ledger"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/presets"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// PublicIPSKU is billed per assigned public address for every resource type.
const PublicIPSKU = "dn229q5mnmp58t58tfel"

// Rule turns one resource declaration into usage records
type Rule interface {
	// Name identifies the rule in logs
	Name() string

	// AppliesTo reports whether the rule handles resourceType
	AppliesTo(resourceType string) bool

	// Apply records the resource's usage into l. On error nothing is
	// recorded for the resource.
	Apply(res plan.Resource, l *ledger.Ledger, env *Env) error
}

// PresetResolver resolves managed database presets
type PresetResolver interface {
	Resolve(family, presetID string) (presets.Spec, error)
}

// Env carries the collaborators a rule may use
type Env struct {
	Presets PresetResolver
	Logger  *zap.Logger

	// OnWarning receives unsupported combinations. May be nil.
	OnWarning func(Warning)
}

func (e *Env) logger() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Outcome classifies a SKU lookup that produced no usage
type Outcome string

const (
	// Unpriced means the combination exists but has no published price
	Unpriced Outcome = "unpriced"

	// Unmapped means no SKU is known for the combination
	Unmapped Outcome = "unmapped"
)

// Warning describes usage that could not be billed
type Warning struct {
	Resource     string  `json:"resource"`
	ResourceType string  `json:"resource_type"`
	Attribute    string  `json:"attribute"`
	Outcome      Outcome `json:"outcome"`
	Detail       string  `json:"detail"`
}

// Registry holds rules in registration order
type Registry struct {
	rules []Rule
}

// NewRegistry creates a registry with the given rules
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// Register appends a rule. Earlier rules take precedence.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// FindRule returns the first rule that applies to resourceType
func (r *Registry) FindRule(resourceType string) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.AppliesTo(resourceType) {
			return rule, true
		}
	}
	return nil, false
}

// Rules returns the registered rules
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Default returns a registry with every supported resource type
func Default() *Registry {
	return NewRegistry(
		ComputeInstance(),
		ComputeDisk(),
		ComputeFilesystem(),
		ComputeInstanceGroup(),
		KubernetesCluster(),
		KubernetesNodeGroup(),
		VPCAddress(),
		MySQLCluster(),
		PostgreSQLCluster(),
		ClickHouseCluster(),
		GreenplumCluster(),
		KafkaCluster(),
		RedisCluster(),
		OpenSearchCluster(),
		YDBDedicated(),
	)
}

// typeRule is a rule bound to a single resource type
type typeRule struct {
	resourceType string
	apply        func(u *usage) error
}

func (r *typeRule) Name() string { return r.resourceType }

func (r *typeRule) AppliesTo(resourceType string) bool {
	return resourceType == r.resourceType
}

func (r *typeRule) Apply(res plan.Resource, l *ledger.Ledger, env *Env) error {
	u := &usage{res: res, env: env}
	if err := r.apply(u); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			return e.WithContext("resource", res.Address)
		}
		return errors.Wrap(errors.TypeInput, res.Address, err)
	}
	u.commit(l)
	return nil
}

type pending struct {
	sku    string
	amount float64
}

// usage buffers a resource's records until the rule finishes, so a failing
// rule leaves the ledger untouched.
type usage struct {
	res      plan.Resource
	env      *Env
	records  []pending
	warnings []Warning
}

func (u *usage) add(sku string, amount float64) {
	if sku == "" || amount == 0 {
		return
	}
	u.records = append(u.records, pending{sku: sku, amount: amount})
}

func (u *usage) warn(attribute string, outcome Outcome, detail string) {
	u.warnings = append(u.warnings, Warning{
		Resource:     u.res.Address,
		ResourceType: u.res.Type,
		Attribute:    attribute,
		Outcome:      outcome,
		Detail:       detail,
	})
}

func (u *usage) resolve(family, presetID string) (presets.Spec, error) {
	if u.env == nil || u.env.Presets == nil {
		return presets.Spec{}, errors.Internal("no preset catalog configured", nil)
	}
	return u.env.Presets.Resolve(family, presetID)
}

func (u *usage) commit(l *ledger.Ledger) {
	for _, p := range u.records {
		l.Record(p.sku, p.amount, u.res.Name, u.res.Type)
	}
	log := u.env.logger()
	for _, w := range u.warnings {
		log.Warn("usage not billed",
			zap.String("resource", w.Resource),
			zap.String("attribute", w.Attribute),
			zap.String("outcome", string(w.Outcome)),
			zap.String("detail", w.Detail))
		if u.env != nil && u.env.OnWarning != nil {
			u.env.OnWarning(w)
		}
	}
}
