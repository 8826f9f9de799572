// Package connectors holds the clients for external services. The only
// connector is sevenshifts, which implements driven.WorkforceAPI over the
// 7shifts REST API.
package connectors
