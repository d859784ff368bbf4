package schema

import _ "embed"

//go:embed pkgin-config.schema.json
var ConfigSchema []byte
