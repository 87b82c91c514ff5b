// Package report renders the outcome of a deploy run for people and for machines.
package report
