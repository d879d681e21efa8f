// Package order contains the order-line input to the quotation engine.
// Lines arrive from the order-management collaborator; the engine groups
// them, resolves their destinations, and prices them. The only state the
// engine ever writes back is the normalized destination, and only through
// the explicit persist command.
package order
