package contestcal

import "embed"

// AccountDetails holds the static name, description and avatar files used
// when updating the details of an announcing account.
//
//go:embed static
var AccountDetails embed.FS
