// Package telemetry provides OpenTelemetry initialization and helpers
// for distributed tracing across the HuevitoIa chef service.
//
// The package configures OTLP HTTP export for traces and logs, with
// support for hosted OTLP backends and local collectors.
package telemetry
