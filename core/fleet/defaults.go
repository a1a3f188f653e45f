package fleet

// DefaultConfig returns the built-in rotation-group partitions. Operators can
// override the tables with a configuration file; see LoadConfig.
func DefaultConfig() Config {
	return Config{
		ContainerDeck: []Group{
			{Name: "container_rotation1", Vessels: []string{
				"KM. ORIENTAL EMERALD", "KM. ORIENTAL RUBY", "KM. ORIENTAL SILVER",
				"KM. ORIENTAL GOLD", "KM. ORIENTAL JADE", "KM. ORIENTAL DIAMOND",
			}},
			{Name: "container_rotation2", Vessels: []string{
				"KM. LUZON", "KM. VERIZON", "KM. ORIENTAL GALAXY",
				"KM. HIJAU SAMUDRA", "KM. ARMADA PERMATA",
			}},
			{Name: "container_rotation3", Vessels: []string{
				"KM. ORIENTAL SAMUDERA", "KM. ORIENTAL PACIFIC", "KM. PULAU NUNUKAN",
				"KM. TELUK FLAMINGGO", "KM. TELUK BERAU", "KM. TELUK BINTUNI",
			}},
			{Name: "container_rotation4", Vessels: []string{
				"KM. PULAU LAYANG", "KM. PULAU WETAR", "KM. PULAU HOKI",
				"KM. SPIL HANA", "KM. SPIL HASYA", "KM. SPIL HAPSRI", "KM. SPIL HAYU",
			}},
			{Name: "container_rotation5", Vessels: []string{
				"KM. HIJAU JELITA", "KM. HIJAU SEJUK", "KM. ARMADA SEJATI",
				"KM. ARMADA SERASI", "KM. ARMADA SEGARA", "KM. ARMADA SENADA",
				"KM. HIJAU SEGAR", "KM. TITANIUM", "KM. VERTIKAL",
			}},
			{Name: "container_rotation6", Vessels: []string{
				"KM. SPIL RENATA", "KM. SPIL RATNA", "KM. SPIL RUMI",
				"KM. PEKAN BERAU", "KM SPIL RAHAYU", "KM. SPIL RETNO",
				"KM. MINAS BARU", "KM PEKAN SAMPIT", "KM. SELILI BARU",
			}},
			{Name: "container_rotation7", Vessels: []string{
				"KM. DERAJAT", "KM. MULIANIM", "KM. PRATIWI RAYA", "KM. MAGELLAN",
				"KM. PAHALA", "KM. PEKAN RIAU", "KM. PEKAN FAJAR", "KM. FORTUNE",
			}},
			{Name: "container_rotation8", Vessels: []string{
				"KM. PRATIWI SATU", "KM. BALI SANUR", "KM. BALI KUTA",
				"KM. BALI GIANYAR", "KM. BALI AYU", "KM. AKASHIA", "KM KAPPA",
			}},
		},
		ContainerEngine: []Group{
			{Name: "container_kkm1", Vessels: []string{
				"KM. ORIENTAL GOLD", "KM. ORIENTAL EMERALD", "KM. ORIENTAL GALAXY",
				"KM. ORIENTAL RUBY", "KM. ORIENTAL SILVER", "KM. ORIENTAL JADE",
				"KM. VERIZON", "KM. LUZON", "KM. ORIENTAL DIAMOND",
			}},
			{Name: "container_kkm2", Vessels: []string{
				"KM. SPIL HAPSRI", "KM. ARMADA PERMATA", "KM. HIJAU SAMUDRA",
				"KM. SPIL HASYA", "KM. ARMADA SEJATI", "KM. SPIL HAYU",
				"KM. SPIL HANA", "KM. HIJAU SEJUK", "KM. HIJAU JELITA",
			}},
			{Name: "container_kkm3", Vessels: []string{
				"KM. ORIENTAL PACIFIC", "KM. ORIENTAL SAMUDERA", "KM. ARMADA SEGARA",
				"KM. ARMADA SENADA", "KM. ARMADA SERASI", "KM. SPIL RATNA",
				"KM. SPIL RUMI", "KM. PULAU NUNUKAN",
			}},
			{Name: "container_kkm4", Vessels: []string{
				"KM. PULAU HOKI", "KM. TELUK BINTUNI", "KM. TELUK FLAMINGGO",
				"KM. PULAU LAYANG", "KM. TELUK BERAU", "KM. SPIL RENATA",
				"KM. PULAU WETAR", "KM SPIL RAHAYU", "KM. SPIL RETNO",
			}},
			{Name: "container_kkm5", Vessels: []string{
				"KM. MINAS BARU", "KM. SELILI BARU", "KM. VERTIKAL",
				"KM. HIJAU SEGAR", "KM. PEKAN RIAU", "KM. PEKAN BERAU",
				"KM. PEKAN FAJAR", "KM. PEKAN SAMPIT", "KM. TITANIUM",
			}},
			{Name: "container_kkm6", Vessels: []string{
				"KM. PRATIWI RAYA", "KM. PRATIWI SATU", "KM. BALI AYU",
				"KM. BALI GIANYAR", "KM. BALI SANUR", "KM. BALI KUTA",
			}},
			{Name: "container_kkm7", Vessels: []string{
				"KM. MAGELLAN", "KM. MULIANIM", "KM. PAHALA",
				"KM. FORTUNE", "KM. AKASHIA", "KM. DERAJAT",
			}},
		},
		ManalagiDeck: []Group{
			{Name: "manalagi_rotation", Vessels: []string{
				"KM. MANALAGI PRITA", "KM. MANALAGI ASTA", "KM. MANALAGI ASTI",
				"KM. MANALAGI DASA", "KM. MANALAGI ENZI", "KM. MANALAGI TARA",
				"KM. MANALAGI WANDA",
			}},
			{Name: "manalagi_rotation2", Vessels: []string{
				"KM. MANALAGI TISYA", "KM. MANALAGI SAMBA", "KM. MANALAGI HITA",
				"KM. MANALAGI VIRA", "KM. MANALAGI YASA", "KM. XYS SATU",
			}},
		},
		ManalagiEngine: []Group{
			{Name: "manalagi_kkm", Vessels: []string{
				"KM. MANALAGI ASTA", "KM. MANALAGI ASTI", "KM. MANALAGI SAMBA",
				"KM. MANALAGI YASA", "KM. XYS SATU", "KM. MANALAGI WANDA",
			}},
			{Name: "manalagi_kkm2", Vessels: []string{
				"KM. MANALAGI TISYA", "KM. MANALAGI PRITA", "KM. MANALAGI DASA",
				"KM. MANALAGI HITA", "KM. MANALAGI ENZI", "KM. MANALAGI TARA",
				"KM. MANALAGI VIRA",
			}},
		},
	}
}
