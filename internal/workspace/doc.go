// Package workspace orchestrates release checks and publishing over an
// ordered set of packages. List order is publish order; the package assumes
// each member can be published once its predecessors are.
package workspace
