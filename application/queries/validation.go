package queries

import "pagegraph/pkg/utils"

// Identifiers become upstream path segments, so every id field is tagged
// excludesall=/?#& to keep path and query syntax out of them.
func validate(q interface{}) error {
	return utils.ValidateStruct(q)
}
