// Package main provides the entry point for the shelter back-office service.
// It runs a Fiber web server exposing the JSON API for rabbits, rabbit
// groups, roles and push tokens, schedules the daily admission sweep, and
// uses gorm for data persistence against MySQL or PostgreSQL.
package main
