// Package api holds the types and chi router generated from swagger/openapi.yaml.
package api

//go:generate go tool oapi-codegen -config cfg.yaml ../../swagger/openapi.yaml
