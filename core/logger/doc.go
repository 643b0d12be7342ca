// Package logger provides slog construction and attribute helpers shared by
// the data-distribution packages.
//
// Create a logger with New:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "ddsdemo")),
//	)
//
// WithDevelopment and WithProduction are presets for text/debug and json/info.
//
// Attribute helpers keep key names consistent across components:
//
//	log.Debug("sample written",
//		logger.Component("data_writer"),
//		logger.Topic(topic.Name()),
//		logger.GUID(writer.GUID()),
//		logger.Sequence(info.SequenceHandle),
//		logger.Count("delivered", n),
//	)
//
// Helpers return an empty slog.Attr for absent values (nil error, empty topic
// name, nil GUID), which slog omits from output.
package logger
