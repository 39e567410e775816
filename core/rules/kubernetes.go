package rules

// KubernetesCluster bills the managed master of yandex_kubernetes_cluster
func KubernetesCluster() Rule {
	return &typeRule{
		resourceType: "yandex_kubernetes_cluster",
		apply: func(u *usage) error {
			// plans carry both keys with the unused one as an empty list
			for _, master := range u.res.Values.Blocks("master") {
				if _, ok := master.Block("zonal"); ok {
					u.add(k8sZonalMasterSKU, 1)
					continue
				}
				if _, ok := master.Block("regional"); ok {
					u.add(k8sRegionalMasterSKU, 1)
					continue
				}
				u.warn("master", Unmapped, "master is neither zonal nor regional")
			}
			return nil
		},
	}
}

// KubernetesNodeGroup bills yandex_kubernetes_node_group as its instance
// template times the planned node count.
func KubernetesNodeGroup() Rule {
	return &typeRule{
		resourceType: "yandex_kubernetes_node_group",
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
