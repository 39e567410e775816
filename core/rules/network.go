package rules

// VPCAddress bills a reserved yandex_vpc_address with an external IPv4
// address.
func VPCAddress() Rule {
	return &typeRule{
		resourceType: "yandex_vpc_address",
		apply: func(u *usage) error {
			if _, ok := u.res.Values.Block("external_ipv4_address"); ok {
				u.publicIPs(1)
			}
			return nil
		},
	}
}
