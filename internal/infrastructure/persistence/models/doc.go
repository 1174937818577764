// Package models contains the GORM persistence models of the sales service.
// Domain aggregates stay free of table mappings; each model converts to and
// from its aggregate with ToDomain and FromDomain.
//
//   - base.go: shared columns (id, timestamps, version, tenant)
//   - catalog.go: products, units of measure, views
//   - trade.go: sales orders and sale order types
//   - inventory.go: pickings, stock moves, books and quants
//   - finance.go: invoices, taxes, journals, currencies
//   - mail.go: chatter messages
package models
