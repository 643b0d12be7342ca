// Package qosprofile loads named QoS profiles from YAML so deployments can
// tune history depth and the recorded QoS fields without recompiling.
//
//	profiles:
//	  default:
//	    reliability: reliable
//	    history: keep_last
//	    depth: 1
//	  sensor:
//	    base: default
//	    depth: 10
//	  audit:
//	    history: keep_all
//	    durability: transient_local
//
// Unset fields come from the base profile, or from dds.DefaultQoS when no
// base is named. Every resolved profile is validated on load.
//
//	profiles, err := qosprofile.LoadFile("qos.yaml")
//	if err != nil {
//		return err
//	}
//	qos, err := profiles.Get("sensor")
//	if err != nil {
//		return err
//	}
//	topic, err := participant.CreateTopic("SensorTopic", "SensorData", qos)
package qosprofile
