// Package metrics provides per-shot flight statistics. Every metric
// implements [dynamo.Metric]; most also implement [dynamo.Launcher] so the
// stepper can hand them the launch state when a shot starts.
package metrics
