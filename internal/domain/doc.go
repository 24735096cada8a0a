// Package domain contains the core business entities and value objects of
// the board and memo services: posts, memos, board categories, optional
// identifiers, and page arithmetic. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
