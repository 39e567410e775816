package rules

// Compute Cloud SKUs shared by instances, instance groups and Kubernetes
// node groups.
var computeSheet = &priceSheet{
	service: "compute",
	regular: map[string]platformSKUs{
		"standard-v3": {
			CPU: fractions{100: "dn2k3vqlk9snp1jv351u", 50: "dn2f0q0d6gtpcom4b1p6", 20: "dn2r8aklo79bmpkd87l3"},
			RAM: "dn2ilq72mjc3bej6j74p",
		},
		"standard-v2": {
			CPU: fractions{100: "dn218a07u143r9v1r5ms", 50: "dn2qbqi1am9oq6oc9s05", 20: "dn26skitjdon841jqit7", 5: "dn2l09d8brnv9s8m5p2r"},
			RAM: "dn2fhtcoocq50j1uj4tg",
		},
		"standard-v1": {
			CPU: fractions{100: "dn299ll54t5jt2gojh7e", 20: "dn2vmq6na03r9vlds7j8", 5: "dn2pm2gap1cc09a33s06"},
			RAM: "dn2dka206olokggsieuu",
		},
		"standard-v3-t4": {
			CPU: fractions{anyFraction: "dn24b7m6qol7tb7tukga"},
			RAM: "dn2lg2hrvbn5b8lm7em4",
			GPU: "dn20ml8ifdps6m7048an",
		},
		"standard-v3-t4i": {
			CPU: fractions{anyFraction: "dn242l2ivnhdd5so2oga"},
			RAM: "dn290pbmohupnus9ajb7",
			GPU: "dn2hql9evci880d8jq7i",
		},
		"gpu-standard-v3": {
			CPU: fractions{anyFraction: "dn28c1erut6m9f9uem08"},
			RAM: "dn21jcm82510bfa6is22",
			GPU: "dn2395q10bihjmm2b0v6",
		},
		"gpu-standard-v3i": {
			CPU: fractions{anyFraction: "dn2fd3g50rub98vfprlt"},
			RAM: "dn2h5gi2u2l3bdclrput",
			GPU: "dn2jfrjoic5h3nh7e6jh",
		},
		"gpu-standard-v2": {
			CPU: fractions{anyFraction: "dn2udmu2aa9jm5a8f4ug"},
			RAM: "dn2qtp90p3r8l8vakmm6",
			GPU: "dn2dlvuk2ecf6hu0kjtl",
		},
		"gpu-standard-v1": {
			CPU: fractions{anyFraction: "dn2sfcnkn3jlhmq568ac"},
			RAM: "dn2nccae8nra81iqphdn",
			GPU: "dn2oroscvvtb6sqtt83i",
		},
	},
	preemptible: map[string]platformSKUs{
		"standard-v3": {
			CPU: fractions{100: "dn2e2fphfupugm21k4hv", 50: "dn2333h2iv190t06bon8", 20: "dn2pdedm5fon78kbl0fh"},
			RAM: "dn26ur5frjbgdek2a0g5",
		},
		"standard-v2": {
			CPU: fractions{100: "dn2ipnaa10sls6i7osfv", 50: "dn20jng1b3a6ggtn52bo", 20: "dn2krclp8uj3432vmpre", 5: "dn292ebti5dcjio7vh2s"},
			RAM: "dn26ur5frjbgdek2a0g5",
		},
		"standard-v1": {
			CPU: fractions{100: "dn247qigcq66fq6t3tk5", 20: "dn24sf8vh5cvj53voa7k", 5: "dn2g5qo1211n5k8i1s3v"},
			RAM: "dn2u497ok1kl70on0ta2",
		},
		"standard-v3-t4": {
			CPU: fractions{anyFraction: "dn2lsfskfirek2985fnd"},
			RAM: "dn2im0g43iedeohe4sac",
			GPU: "dn2cpk4mc82b1vib72e5",
		},
		"standard-v3-t4i": {
			CPU: fractions{anyFraction: "dn2960mi7268n67o8iae"},
			RAM: "dn25rffeums4j1ku5649",
			GPU: "dn2qlml2u48bng4jgilh",
		},
		"gpu-standard-v3": {
			CPU: fractions{anyFraction: "dn2tvs05nnrib706hgnt"},
			RAM: "dn2m4gusa7m7t4hl6vo2",
			GPU: "dn211dses9ju3abvq0bs",
		},
		"gpu-standard-v3i": {
			CPU: fractions{anyFraction: "dn2o9fiqemifmch1dq7c"},
			RAM: "dn2mgiub24223fh5mvgv",
			GPU: "dn2qvcfe8i5vqlrvterc",
		},
		"gpu-standard-v2": {
			CPU: fractions{anyFraction: "dn2h4u30djq3jhh8dqh8"},
			RAM: "dn2hotj7skno0turhbq1",
			GPU: "dn23ppvthcls7rjt5pol",
		},
		"gpu-standard-v1": {
			CPU: fractions{anyFraction: "dn2t7aa68lehsmvo5mss"},
			RAM: "dn2k0omvmglh857u60vu",
			GPU: "dn2lov15qqamcimfv84q",
		},
	},
	// Compute-optimised instances are not in the public price list.
	unpriced: map[string]bool{"highfreq-v3": true},
}

var computeDisks = &diskSheet{
	service: "compute",
	types: map[string]string{
		"network-ssd":               "dn27ajm6m8mnfcshbi61",
		"network-hdd":               "dn2al287u6jr3a710u8g",
		"network-ssd-nonreplicated": "dn24kdllggk8ahsol15g",
		"network-ssd-io-m3":         "dn25ksor7p112bvs2qts",
	},
}

var filesystemDisks = &diskSheet{
	service: "filesystem",
	types: map[string]string{
		"network-ssd": "dn27ajm6m8mnfcshbi61",
		"network-hdd": "dn2al287u6jr3a710u8g",
	},
}

// Managed Kubernetes master SKUs
const (
	k8sZonalMasterSKU    = "dn2tdli7u18tvvc28ov8"
	k8sRegionalMasterSKU = "dn2j2khrfcdc4p1aki30"
)
