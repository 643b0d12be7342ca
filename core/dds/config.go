package dds

// Config holds environment-driven defaults for a participant and the QoS of
// the entities it creates. Designed to be loaded with core/config.
type Config struct {
	DomainID    int             `env:"DDS_DOMAIN_ID" envDefault:"0"`
	Reliability ReliabilityKind `env:"DDS_RELIABILITY" envDefault:"reliable"`
	Durability  DurabilityKind  `env:"DDS_DURABILITY" envDefault:"volatile"`
	History     HistoryKind     `env:"DDS_HISTORY" envDefault:"keep_last"`
	Depth       int             `env:"DDS_HISTORY_DEPTH" envDefault:"1"`
	MaxSamples  int             `env:"DDS_MAX_SAMPLES" envDefault:"100"`
}

// DefaultConfig returns the same values as the envDefault tags.
func DefaultConfig() Config {
	q := DefaultQoS()
	return Config{
		DomainID:    0,
		Reliability: q.Reliability,
		Durability:  q.Durability,
		History:     q.History,
		Depth:       q.Depth,
		MaxSamples:  q.MaxSamples,
	}
}

// QoS converts the configuration into a QoS value.
func (c Config) QoS() QoS {
	return QoS{
		Reliability: c.Reliability,
		Durability:  c.Durability,
		History:     c.History,
		Depth:       c.Depth,
		MaxSamples:  c.MaxSamples,
	}
}
