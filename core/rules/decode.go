package rules

import (
	"go.uber.org/multierr"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// decoder collects required-field errors so a resource reports every
// missing attribute at once. Reads below a missing block are not reported
// again.
type decoder struct {
	errs error
}

func (d *decoder) block(v plan.Values, key string) plan.Values {
	if v.IsEmpty() {
		return v
	}
	b, err := v.RequireBlock(key)
	d.errs = multierr.Append(d.errs, err)
	return b
}

func (d *decoder) float(v plan.Values, key string) float64 {
	if v.IsEmpty() {
		return 0
	}
	f, err := v.RequireFloat(key)
	d.errs = multierr.Append(d.errs, err)
	return f
}

func (d *decoder) str(v plan.Values, key string) string {
	if v.IsEmpty() {
		return ""
	}
	s, err := v.RequireString(key)
	d.errs = multierr.Append(d.errs, err)
	return s
}

func (d *decoder) err() error {
	if d.errs == nil {
		return nil
	}
	return errors.Wrap(errors.TypeInput, "invalid resource values", d.errs)
}

// vmSpec is the decoded shape of a virtual machine or instance template
type vmSpec struct {
	shape        shape
	bootDiskSize float64
	bootDiskType string
	nat          bool
}

// decodeInstance reads a yandex_compute_instance declaration.
func decodeInstance(v plan.Values) (vmSpec, error) {
	var d decoder
	res := d.block(v, "resources")
	spec := vmSpec{
		shape: shape{
			Tier: Tier{
				Platform:     v.String("platform_id", "standard-v3"),
				CoreFraction: res.Int("core_fraction", 100),
				Preemptible:  preemptible(v),
			},
			Cores:  d.float(res, "cores"),
			Memory: d.float(res, "memory"),
			GPUs:   res.Float("gpus", 0),
		},
		bootDiskType: "network-hdd",
	}
	if params, ok := v.Dig("boot_disk", "initialize_params"); ok {
		spec.bootDiskSize = params.Float("size", 0)
		spec.bootDiskType = params.String("type", "network-hdd")
	}
	if nic, ok := v.Block("network_interface"); ok {
		spec.nat = nic.Bool("nat", false)
	}
	return spec, d.err()
}

// decodeTemplate reads the instance_template of an instance group or a
// Kubernetes node group. The scheduling policy is read from the template and
// falls back to the resource's top level.
func decodeTemplate(v plan.Values) (vmSpec, error) {
	var d decoder
	tpl := d.block(v, "instance_template")
	res := d.block(tpl, "resources")

	pre := preemptible(v)
	if _, ok := tpl.Block("scheduling_policy"); ok {
		pre = preemptible(tpl)
	}

	spec := vmSpec{
		shape: shape{
			Tier: Tier{
				Platform:     tpl.String("platform_id", "standard-v3"),
				CoreFraction: res.Int("core_fraction", 100),
				Preemptible:  pre,
			},
			Cores:  d.float(res, "cores"),
			Memory: d.float(res, "memory"),
			GPUs:   res.Float("gpus", 0),
		},
		bootDiskType: "network-hdd",
	}
	if disk, ok := tpl.Block("boot_disk"); ok {
		// node groups carry size and type directly, instance groups
		// inside initialize_params
		src := disk
		if params, ok := disk.Block("initialize_params"); ok && !disk.Has("size") {
			src = params
		}
		spec.bootDiskSize = src.Float("size", 0)
		spec.bootDiskType = src.String("type", "network-hdd")
	}
	if nic, ok := tpl.Block("network_interface"); ok {
		spec.nat = nic.Bool("nat", false)
	}
	return spec, d.err()
}

func preemptible(v plan.Values) bool {
	if sp, ok := v.Block("scheduling_policy"); ok {
		return sp.Bool("preemptible", false)
	}
	return false
}

// scaleTarget returns the planned instance count of a group: the initial
// size of an auto scale policy, else the fixed size, else 1. A scale block
// whose target is 0 counts as 1 instance.
func scaleTarget(v plan.Values) float64 {
	sp, ok := v.Block("scale_policy")
	if !ok {
		return 1
	}
	if auto, ok := sp.Block("auto_scale"); ok {
		return atLeastOne(auto.Float("initial", 0))
	}
	if fixed, ok := sp.Block("fixed_scale"); ok {
		return atLeastOne(fixed.Float("size", 0))
	}
	return 1
}

func atLeastOne(n float64) float64 {
	if n < 1 {
		return 1
	}
	return n
}

// mdbResources is the decoded resources block of a managed database role
type mdbResources struct {
	presetID string
	diskSize float64
	diskType string
}

func decodeMDBResources(d *decoder, v plan.Values, defaultDisk string) mdbResources {
	return mdbResources{
		presetID: d.str(v, "resource_preset_id"),
		diskSize: v.Float("disk_size", 0),
		diskType: v.String("disk_type_id", defaultDisk),
	}
}
