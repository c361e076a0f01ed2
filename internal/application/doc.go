// Package application provides application initialization and dependency
// wiring. It encapsulates the creation of the rule store, packing handlers,
// router, and HTTP server instances, making the main package cleaner and more
// focused on CLI parsing and orchestration.
package application
