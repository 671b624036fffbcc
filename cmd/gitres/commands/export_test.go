package commands

// RenderStats exposes renderStats for golden tests.
var RenderStats = renderStats
