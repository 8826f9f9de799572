// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven ports
// (the 7shifts connector, the stores and the config file).
package services
