package assets

// Built-in template names.
const (
	DecoderTemplate  = "decoder"
	FragmentTemplate = "fragment"
)

// templateExt is appended to template names on disk and in the embedded filesystem.
const templateExt = ".tmpl"

// AssetLoader defines the contract for loading templates.
type AssetLoader interface {
	// LoadTemplate loads a template by name (without extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
