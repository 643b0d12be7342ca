// Package dds provides an in-process publish/subscribe core modelled on the
// Data Distribution Service entity set: topics, data writers, data readers and
// the participant registry that creates and matches them.
//
// Delivery is synchronous. A Write stamps one SampleInfo, clones the sample for
// every matched reader and appends it to each reader's history queue before
// returning. Listeners run after all locks are released, so a listener may call
// Take, or even Write on another writer, without deadlocking.
//
// # Features
//
//   - Keep-last and keep-all history per reader, evicting the oldest on overflow
//   - Per-write metadata: source timestamp, monotonic sequence handle, writer GUID
//   - Explicit matching by topic name, with identity-set reader registration
//   - Typed access through TakeAs and ReadAs
//   - Off-goroutine listener hand-off with AsyncListener
//   - Stats snapshots on every entity for metrics export
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/dds/core/dds"
//
//	p := dds.NewDomainParticipant(0, dds.WithParticipantLogger(log))
//	defer p.Close()
//
//	topic, err := p.CreateTopic("SensorTopic", "SensorData", dds.KeepLastQoS(10))
//	if err != nil {
//		return err
//	}
//
//	pub, _ := p.CreatePublisher()
//	sub, _ := p.CreateSubscriber()
//
//	writer, _ := pub.CreateDataWriter(topic)
//	reader, _ := sub.CreateDataReader(topic)
//	reader.SetListener(dds.ListenerFunc(func() {
//		for {
//			data, info, ok := dds.TakeAs[*SensorData](reader)
//			if !ok {
//				return
//			}
//			fmt.Println(info.SequenceHandle, data)
//		}
//	}))
//
//	p.MatchTopic("SensorTopic")
//
//	if err := writer.Write(&SensorData{ID: 1, Temperature: 21.5}); err != nil {
//		return err
//	}
//
// # Quality of Service
//
// Only History and Depth change behavior. Reliability, Durability and
// MaxSamples are stored and reported but never consulted: delivery is always
// in-process, late-joining readers never see earlier samples, and keep-all
// queues are unbounded.
//
// # Concurrency
//
// Every entity is safe for concurrent use. Locks are always acquired in the
// order Publisher/Subscriber, DomainParticipant, DataWriter, DataReader.
// Two concurrent writers feeding one reader interleave in an unspecified
// order; each writer's own samples stay in write order.
package dds
