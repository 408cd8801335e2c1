package models

// HealthResource is the liveness report returned by the health endpoint
type HealthResource struct {
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Database    HealthDatabase    `json:"database"`
	System      HealthSystem      `json:"system"`
	Environment HealthEnvironment `json:"environment"`
}

// HealthDatabase reports document store connectivity
type HealthDatabase struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// HealthSystem is a point-in-time resource snapshot
type HealthSystem struct {
	Uptime     string       `json:"uptime"`
	Memory     HealthMemory `json:"memory"`
	Goroutines int          `json:"goroutines"`
}

// HealthMemory reports process memory usage in MB
type HealthMemory struct {
	Alloc      string `json:"alloc"`
	TotalAlloc string `json:"totalAlloc"`
	Sys        string `json:"sys"`
	HeapInUse  string `json:"heapInUse"`
}

// HealthEnvironment reports runtime details
type HealthEnvironment struct {
	Go  string `json:"go"`
	Env string `json:"env"`
}
