// Package common provides configuration and logging shared across the
// rpc and cmd packages.
//
// The package focuses on:
//   - Configuration structures for client and server components
//   - A custom leveled logger with consistent formatting across the
//     application
//
// Key Components:
//
//   - ServerConfig: Configuration for the library server, including the
//     protocol endpoint, the optional metrics endpoint, the library
//     policy parameters, and the log level.
//
//   - ClientConfig: Configuration for client components, controlling
//     connection parameters, timeouts, and retry behavior.
//
//   - ILogger: Named, leveled loggers created through GetLogger and
//     configured once at startup through InitLoggers.
package common
