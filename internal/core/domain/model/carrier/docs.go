// Package carrier contains the carrier-side reference entities: the carrier
// itself with its billing configuration, its contracted rate tables, the
// service bindings that tie a carrier and table to a served location, and the
// vehicle classes used for capacity filtering. All of them are read-only to
// the quotation engine and owned by the back-office maintenance collaborator.
package carrier
