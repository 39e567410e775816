package rules

import (
	"math"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
)

const bytesPerGB = 1 << 30

// role is one independently billed part of a managed database cluster:
// the cluster itself, its coordination hosts or a named node group.
type role struct {
	family    string
	resources mdbResources
	hosts     float64
	publicIPs float64
	sheet     *priceSheet
	disks     *diskSheet
}

// bill resolves the role's preset and records cores, memory, public
// addresses and storage for every host.
func (u *usage) bill(r role) error {
	spec, err := u.resolve(r.family, r.resources.presetID)
	if err != nil {
		return err
	}
	sh := shape{
		Tier:   Tier{Platform: spec.Platform, CoreFraction: spec.CoreFraction},
		Cores:  spec.Cores,
		Memory: spec.Memory,
	}
	u.compute(r.sheet, sh, r.hosts)
	u.publicIPs(r.publicIPs)
	u.storage(r.disks, r.resources.diskType, r.resources.diskSize, r.hosts)
	return nil
}

// countHosts counts host entries of hostType, or all hosts when hostType is
// empty, and how many of them have a public address.
func countHosts(v plan.Values, hostType string) (hosts, public float64) {
	for _, h := range v.Blocks("host") {
		if hostType != "" && h.String("type", "") != hostType {
			continue
		}
		hosts++
		if h.Bool("assign_public_ip", false) {
			public++
		}
	}
	return hosts, public
}

// MySQLCluster bills yandex_mdb_mysql_cluster
func MySQLCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_mysql_cluster",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			res := decodeMDBResources(&d, d.block(v, "resources"), "network-hdd")
			if err := d.err(); err != nil {
				return err
			}
			hosts, public := countHosts(v, "")
			return u.bill(role{family: "mysql", resources: res, hosts: hosts, publicIPs: public, sheet: mysqlSheet, disks: mysqlDisks})
		},
	}
}

// PostgreSQLCluster bills yandex_mdb_postgresql_cluster
func PostgreSQLCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_postgresql_cluster",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			res := decodeMDBResources(&d, d.block(d.block(v, "config"), "resources"), "network-hdd")
			if err := d.err(); err != nil {
				return err
			}
			hosts, public := countHosts(v, "")
			return u.bill(role{family: "postgresql", resources: res, hosts: hosts, publicIPs: public, sheet: postgresqlSheet, disks: postgresqlDisks})
		},
	}
}

// ClickHouseCluster bills yandex_mdb_clickhouse_cluster. ClickHouse and
// ZooKeeper hosts are counted from the host list by type; only ClickHouse
// hosts get public addresses.
func ClickHouseCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_clickhouse_cluster",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			ch := decodeMDBResources(&d, d.block(d.block(v, "clickhouse"), "resources"), "network-hdd")
			var zk mdbResources
			keeper, hasKeeper := v.Block("zookeeper")
			if hasKeeper {
				zk = decodeMDBResources(&d, d.block(keeper, "resources"), "network-hdd")
			}
			if err := d.err(); err != nil {
				return err
			}

			hosts, public := countHosts(v, "CLICKHOUSE")
			if err := u.bill(role{family: "clickhouse", resources: ch, hosts: hosts, publicIPs: public, sheet: clickhouseSheet, disks: clickhouseDisks}); err != nil {
				return err
			}
			keepers, _ := countHosts(v, "ZOOKEEPER")
			if !hasKeeper || keepers == 0 {
				return nil
			}
			return u.bill(role{family: "clickhouse", resources: zk, hosts: keepers, sheet: clickhouseKeeperSheet, disks: clickhouseDisks})
		},
	}
}

// GreenplumCluster bills the master and segment subclusters of
// yandex_mdb_greenplum_cluster. assign_public_ip applies to master hosts.
func GreenplumCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_greenplum_cluster",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			master := decodeMDBResources(&d, d.block(d.block(v, "master_subcluster"), "resources"), "network-hdd")
			segment := decodeMDBResources(&d, d.block(d.block(v, "segment_subcluster"), "resources"), "network-hdd")
			if err := d.err(); err != nil {
				return err
			}

			masters := v.Float("master_host_count", 0)
			var public float64
			if v.Bool("assign_public_ip", false) {
				public = masters
			}
			if err := u.bill(role{family: "greenplum", resources: master, hosts: masters, publicIPs: public, sheet: greenplumSheet, disks: greenplumDisks}); err != nil {
				return err
			}
			return u.bill(role{family: "greenplum", resources: segment, hosts: v.Float("segment_host_count", 0), sheet: greenplumSheet, disks: greenplumDisks})
		},
	}
}

// kafkaKeeperHosts is the size of the ZooKeeper ensemble of a Kafka cluster
const kafkaKeeperHosts = 3

// KafkaCluster bills yandex_mdb_kafka_cluster brokers and, when configured,
// its ZooKeeper ensemble.
func KafkaCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_kafka_cluster",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			cfg := d.block(v, "config")
			kafka := decodeMDBResources(&d, d.block(d.block(cfg, "kafka"), "resources"), "network-hdd")
			var zk mdbResources
			keeper, hasKeeper := cfg.Block("zookeeper")
			if hasKeeper {
				zk = decodeMDBResources(&d, d.block(keeper, "resources"), "network-hdd")
			}
			if err := d.err(); err != nil {
				return err
			}

			if hasKeeper {
				if err := u.bill(role{family: "kafka", resources: zk, hosts: kafkaKeeperHosts, sheet: kafkaKeeperSheet, disks: kafkaDisks}); err != nil {
					return err
				}
			}
			brokers := cfg.Float("brokers_count", 1)
			var public float64
			if cfg.Bool("assign_public_ip", false) {
				public = brokers
			}
			return u.bill(role{family: "kafka", resources: kafka, hosts: brokers, publicIPs: public, sheet: kafkaSheet, disks: kafkaDisks})
		},
	}
}

// RedisCluster bills yandex_mdb_redis_cluster
func RedisCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_redis_cluster",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			res := decodeMDBResources(&d, d.block(v, "resources"), "network-ssd")
			if err := d.err(); err != nil {
				return err
			}
			hosts, public := countHosts(v, "")
			return u.bill(role{family: "redis", resources: res, hosts: hosts, publicIPs: public, sheet: redisSheet, disks: redisDisks})
		},
	}
}

// OpenSearchCluster bills every OpenSearch and Dashboards node group of
// yandex_mdb_opensearch_cluster. Node group disk sizes are in bytes.
func OpenSearchCluster() Rule {
	return &typeRule{
		resourceType: "yandex_mdb_opensearch_cluster",
		apply: func(u *usage) error {
			cfg, ok := u.res.Values.Block("config")
			if !ok {
				return nil
			}
			var groups []plan.Values
			for _, section := range []string{"opensearch", "dashboards"} {
				if s, ok := cfg.Block(section); ok {
					groups = append(groups, s.Blocks("node_groups")...)
				}
			}

			var d decoder
			roles := make([]role, 0, len(groups))
			for _, g := range groups {
				res := decodeMDBResources(&d, d.block(g, "resources"), "network-hdd")
				res.diskSize = math.Round(res.diskSize / bytesPerGB)
				hosts := g.Float("hosts_count", 1)
				var public float64
				if g.Bool("assign_public_ip", false) {
					public = hosts
				}
				roles = append(roles, role{family: "opensearch", resources: res, hosts: hosts, publicIPs: public, sheet: opensearchSheet, disks: opensearchDisks})
			}
			if err := d.err(); err != nil {
				return err
			}
			for _, r := range roles {
				if err := u.bill(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// YDBDedicated bills yandex_ydb_database_dedicated: cores and memory per
// compute node and 100 GB per storage group.
func YDBDedicated() Rule {
	return &typeRule{
		resourceType: "yandex_ydb_database_dedicated",
		apply: func(u *usage) error {
			v := u.res.Values
			var d decoder
			presetID := d.str(v, "resource_preset_id")
			if err := d.err(); err != nil {
				return err
			}
			spec, err := u.resolve("ydb", presetID)
			if err != nil {
				return err
			}

			nodes := 1.0
			if fixed, ok := v.Dig("scale_policy", "fixed_scale"); ok {
				nodes = atLeastOne(fixed.Float("size", 1))
			}
			u.add(ydbCPUSKU, spec.Cores*nodes)
			u.add(ydbRAMSKU, spec.Memory*nodes)
			if storage, ok := v.Block("storage_config"); ok {
				u.add(ydbStorageSKU, storage.Float("group_count", 0)*ydbGroupSize)
			}
			return nil
		},
	}
}
