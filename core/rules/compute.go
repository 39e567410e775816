package rules

// ComputeInstance bills yandex_compute_instance: cores, memory and GPUs by
// platform tier, the boot disk and a public address when NAT is enabled.
func ComputeInstance() Rule {
	return &typeRule{
		resourceType: "yandex_compute_instance",
		apply: func(u *usage) error {
			spec, err := decodeInstance(u.res.Values)
			if err != nil {
				return err
			}
			u.vm(spec, 1)
			return nil
		},
	}
}

// ComputeInstanceGroup bills yandex_compute_instance_group as its instance
// template times the planned group size.
func ComputeInstanceGroup() Rule {
	return &typeRule{
		resourceType: "yandex_compute_instance_group",
		apply: func(u *usage) error {
			spec, err := decodeTemplate(u.res.Values)
			if err != nil {
				return err
			}
			u.vm(spec, scaleTarget(u.res.Values))
			return nil
		},
	}
}

// ComputeDisk bills yandex_compute_disk by size and type
func ComputeDisk() Rule {
	return &typeRule{
		resourceType: "yandex_compute_disk",
		apply: func(u *usage) error {
			v := u.res.Values
			u.storage(computeDisks, v.String("type", "network-hdd"), v.Float("size", 0), 1)
			return nil
		},
	}
}

// ComputeFilesystem bills yandex_compute_filesystem. Only HDD and SSD
// filesystems exist.
func ComputeFilesystem() Rule {
	return &typeRule{
		resourceType: "yandex_compute_filesystem",
		apply: func(u *usage) error {
			v := u.res.Values
			u.storage(filesystemDisks, v.String("type", "network-hdd"), v.Float("size", 0), 1)
			return nil
		},
	}
}

func (u *usage) vm(spec vmSpec, count float64) {
	u.compute(computeSheet, spec.shape, count)
	u.storage(computeDisks, spec.bootDiskType, spec.bootDiskSize, count)
	if spec.nat {
		u.publicIPs(count)
	}
}
