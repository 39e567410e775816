package rules

// Managed database SKUs. Each engine bills cores, memory and storage under
// its own SKUs even where the hardware is shared. Compute-optimised presets
// have a single 100% fraction.

var mysqlSheet = &priceSheet{
	service: "mysql",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn2mfa1c935rjc6t4eek", 50: "dn2lo0l3birckqii0kpd"}, RAM: "dn2nhjlpvll7kron0lv0"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn26hjuqup86h8g2dc4o"}, RAM: "dn2afr14vhrtu5rgvtvj"},
		"standard-v2": {CPU: fractions{100: "dn2ekqj88rk6cj186bgv", 50: "dn23em5ur8pmc5oe1ugg", 20: "dn29qcell9096oecia43", 5: "dn2ikmrgbcfqnq0e89rh"}, RAM: "dn2q9cgq04cl6ju1j2k7"},
		"standard-v1": {CPU: fractions{100: "dn2hi38l2amv53lnkudh", 50: "dn234519saji1v5gtbk7", 20: "dn24fhsc8h68f51o549s", 5: "dn2manmpat7cv2ge9kbm"}, RAM: "dn2s8tj0qdakj5c49e5o"},
	},
}

var mysqlDisks = &diskSheet{
	service: "mysql",
	types: map[string]string{
		"network-ssd":               "dn2j7e6hs2j2ugni50lq",
		"network-hdd":               "dn2thbds4400ckbijvch",
		"network-ssd-nonreplicated": "dn286bla0e9c7d2fnqst",
		"network-ssd-io-m3":         "dn2po189eb088u6kpa9o",
		"local-ssd":                 "dn28goa6h2rkk2skokee",
	},
}

var postgresqlSheet = &priceSheet{
	service: "postgresql",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn232gunmdllqdl5cicd", 50: "dn20phj76ak2oh3m4sgn"}, RAM: "dn2snd5f5rifj49dhovh"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn2878t3j92nm7ht5tlq"}, RAM: "dn2dflbiele6g9he24ee"},
		"standard-v2": {CPU: fractions{100: "dn2foiqm6aoaghmjcr38", 50: "dn2ac5geuj2i95lkh5te", 20: "dn2k4nll5o0unlnnn0hf", 5: "dn217kngosua0ige7glr"}, RAM: "dn2b1ve4tifofkbpqtlo"},
		"standard-v1": {CPU: fractions{100: "dn2n5qctucuvrif2l6v2", 50: "dn24saqltp4lsu0kgc6a", 20: "dn24heoov30dnk16kvqi", 5: "dn26tqk6cr5ocu7v3j5i"}, RAM: "dn2i2qka7e75bh6ok7he"},
	},
}

var postgresqlDisks = &diskSheet{
	service: "postgresql",
	types: map[string]string{
		"network-ssd":               "dn2euvjs01kht9oftfji",
		"network-hdd":               "dn2l0lh2aon42b2d7jb9",
		"network-ssd-nonreplicated": "dn2t1rhogdm8t0gtao1s",
		"network-ssd-io-m3":         "dn2vi9oeraem9ptu27ad",
		"local-ssd":                 "dn2nr78ch39birtq8cud",
	},
}

var clickhouseSheet = &priceSheet{
	service: "clickhouse",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn2h2fne3qa9bjv2mm0b", 50: "dn2slkf8qnvg3lohvlnk"}, RAM: "dn2cvuiesm49elnni1a5"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn277ac8ru4ub394msu1"}, RAM: "dn2co8sk8cldl5on3ckf"},
		"standard-v2": {CPU: fractions{100: "dn2bo4tud2qeo60gr008", 50: "dn2qjtq7ee80fj9c2ot0", 20: "dn24kods372d64lhijmn", 5: "dn2ro2rucgm410h34tiu"}, RAM: "dn2fol5odat55iak187k"},
		"standard-v1": {CPU: fractions{100: "dn23nulcgejjcs3a5k6c", 50: "dn27d2sdttppcok68ikt", 20: "dn20nfs6nvqmsnvjdd5r", 5: "dn2bl87f2dv7shnmistk"}, RAM: "dn2ci1m71mcpuans0njt"},
	},
}

var clickhouseKeeperSheet = &priceSheet{
	service: "clickhouse zookeeper",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn270b41ltvr4qs6fdu0", 50: "dn28oel39sj8kmfr78lk"}, RAM: "dn2tg9g6pi4k18isqcq7"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn29tpsi73qabnq4m9kb"}, RAM: "dn2i1lhi7dqj2nah4i2n"},
		"standard-v2": {CPU: fractions{100: "dn2g6deavckbovip5uu5", 50: "dn2b40gt80iuh70kfpqc", 20: "dn2iv9kja0ntvt3uocjm", 5: "dn2ud13pi583kt52h4jv"}, RAM: "dn2hhsaqch2o4tkn1qnk"},
		"standard-v1": {CPU: fractions{100: "dn2a5pb4kkrvk6ra5vhk", 50: "dn29aeejuka6vtvul02s", 20: "dn2m7d3nj7qtfhi14gjv", 5: "dn2vh46ucftq2ponpe4c"}, RAM: "dn2fg67mc3h26dqfs2s9"},
	},
}

// ClickHouse and its ZooKeeper hosts share storage SKUs.
var clickhouseDisks = &diskSheet{
	service: "clickhouse",
	types: map[string]string{
		"network-ssd":               "dn2mvvhqdpp24tm36ks4",
		"network-hdd":               "dn2utn4rqnas617dfa2q",
		"network-ssd-nonreplicated": "dn2e0j7ko5l58njegum8",
		"network-ssd-io-m3":         "dn2lou40il2st50oh4pd",
		"local-ssd":                 "dn222q64f5mcjm36ed4q",
	},
}

var greenplumSheet = &priceSheet{
	service: "greenplum",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{anyFraction: "dn22vrmol6tmlqmnflh0"}, RAM: "dn2fkkqvmd2dhlo7b07m"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn21dgdltqrgdsodkm4i"}, RAM: "dn2hom6ljm6s2js93o40"},
		"standard-v2": {CPU: fractions{anyFraction: "dn27vfbvh9mtobabcvd3"}, RAM: "dn2gbhl2hc3aun6t7dgm"},
	},
}

var greenplumDisks = &diskSheet{
	service: "greenplum",
	types: map[string]string{
		"network-ssd":               "dn24ljti6nor6rm64n98",
		"network-hdd":               "dn2amtenb2bmhm5r3t26",
		"network-ssd-nonreplicated": "dn281sknb94nk6dhg5f1",
		"network-ssd-io-m3":         "dn2q30eprodapfghra4q",
		"local-ssd":                 "dn23vk0nguhc9qe9v30c",
	},
}

var kafkaSheet = &priceSheet{
	service: "kafka",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn24mf6m837qdtfaus9o", 50: "dn2j1e6ag4ebi1lqhpb5"}, RAM: "dn2ftqohv8psorjabi12"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn2u61ode72vg51luvm5"}, RAM: "dn2u83rsns5m0bdk8pra"},
		"standard-v2": {CPU: fractions{100: "dn20mtnp2jnjj4km7u5g", 50: "dn25ij9c6ncskqe2v804"}, RAM: "dn29ei2iq0joi59033pb"},
	},
}

var kafkaKeeperSheet = &priceSheet{
	service: "kafka zookeeper",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn2nhhb7jic2747airrn", 50: "dn2gsmai0ju430119mqj"}, RAM: "dn2r01fpbih17tae9m00"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn2prkfjerh1oh1km220"}, RAM: "dn2un2g6tou5jrg18j3d"},
		"standard-v2": {CPU: fractions{100: "dn2rqdpeh829k7prtfng", 50: "dn2oobqd83ld4uucdr5g"}, RAM: "dn2kd8egpcfqmm4b9f1m"},
	},
}

var kafkaDisks = &diskSheet{
	service: "kafka",
	types: map[string]string{
		"network-ssd":               "dn2du1uuuvjdqdpmsmsd",
		"network-hdd":               "dn28vvrfmvdd2a9vhfus",
		"network-ssd-nonreplicated": "dn278mhc61kqavrjh26u",
		"network-ssd-io-m3":         "dn25ksor7p112bvs2qts",
		"local-ssd":                 "dn26m07r3n3lfhu0sshg",
	},
}

var redisSheet = &priceSheet{
	service: "redis",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn2qrqp6uho94a80hgr3", 50: "dn2olfc9i989aj43sdh9"}, RAM: "dn2i5hfnisk3mg4rkl0v"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn2p5vd4ccc8i53ia6bi"}, RAM: "dn2sf9026ldfpoaflvju"},
		"standard-v2": {CPU: fractions{100: "dn266b8r1i07682ojiiq", 50: "dn26opl99hcbjqvo87gf", 5: "dn2qgqnuuucr2uat9be2"}, RAM: "dn2gac3fpk1bsurdkf0h"},
		"standard-v1": {CPU: fractions{100: "dn2ta4lgerp02btumaic", 20: "dn29cjcghhc5ihatrc35", 5: "dn2gvhqj7nimn9jaofi0"}, RAM: "dn24sref9ucjdo6ut46k"},
	},
}

// Redis has no HDD storage.
var redisDisks = &diskSheet{
	service: "redis",
	types: map[string]string{
		"network-ssd":               "dn2brvmhtb2i0o7gchn6",
		"network-ssd-nonreplicated": "dn265o7f5n5dh8pcdes5",
		"network-ssd-io-m3":         "dn2jbe8pp30806tb8dev",
		"local-ssd":                 "dn2b2d8c9e60npmqq41k",
	},
}

var opensearchSheet = &priceSheet{
	service: "opensearch",
	regular: map[string]platformSKUs{
		"standard-v3": {CPU: fractions{100: "dn2rf1bupkvgk646cpqo", 50: "dn2jeuof2ujtjeadau6i"}, RAM: "dn22dhakdgfrijul4v1f"},
		"highfreq-v3": {CPU: fractions{anyFraction: "dn2p79o9d7r4tdm1s1jr"}, RAM: "dn2ko90o5lnvcgc0u6km"},
		"standard-v2": {CPU: fractions{100: "dn211hvm5bgm4dl0gblv", 50: "dn2l6h3sovqem675uih2"}, RAM: "dn2uga61a66rcda0igtk"},
	},
}

var opensearchDisks = &diskSheet{
	service: "opensearch",
	types: map[string]string{
		"network-ssd":               "dn28u08us0otvnpd7tiu",
		"network-hdd":               "dn217fio8e4jq2bb93va",
		"network-ssd-nonreplicated": "dn2gt4e75hm80bpgk8i7",
		"network-ssd-io-m3":         "dn2690d7uj1the1vaggf",
		"local-ssd":                 "dn2dnba7orfgdag64gmh",
	},
}

// YDB dedicated databases are billed on one platform regardless of preset.
const (
	ydbCPUSKU     = "dn2uh84ab9ga5954i807"
	ydbRAMSKU     = "dn24ok7m82d8uhe9g725"
	ydbStorageSKU = "dn26b206u8r13m8go6d2"

	// ydbGroupSize is the storage of one YDB storage group in GB
	ydbGroupSize = 100
)
