package quotation

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTreeArch = `<tree string="Products">` +
	`<field name="default_code"/>` +
	`<field name="name" modifiers='{"required":true}'/>` +
	`<field name="lst_price"/>` +
	`</tree>`

func parseArch(t *testing.T, arch string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(arch))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestFieldsViewGet(t *testing.T) {
	t.Run("unchanged outside quotation context", func(t *testing.T) {
		arch, err := FieldsViewGet(testTreeArch, "tree", false)
		require.NoError(t, err)
		assert.Equal(t, testTreeArch, arch)
	})

	t.Run("unchanged for other view types", func(t *testing.T) {
		form := `<form><field name="name"/></form>`
		arch, err := FieldsViewGet(form, "form", true)
		require.NoError(t, err)
		assert.Equal(t, form, arch)
	})

	t.Run("tree made editable on qty only", func(t *testing.T) {
		arch, err := FieldsViewGet(testTreeArch, "tree", true)
		require.NoError(t, err)

		root := parseArch(t, arch)
		assert.Equal(t, "tree", root.Tag)
		assert.Equal(t, "true", root.SelectAttrValue("edit", ""))
		assert.Equal(t, "false", root.SelectAttrValue("create", ""))
		assert.Equal(t, "top", root.SelectAttrValue("editable", ""))
		assert.Equal(t, "Products", root.SelectAttrValue("string", ""))

		children := root.ChildElements()
		require.Len(t, children, 5)

		qty := children[0]
		assert.Equal(t, "field", qty.Tag)
		assert.Equal(t, "qty", qty.SelectAttrValue("name", ""))
		assert.Equal(t, "0", qty.SelectAttrValue("readonly", ""))
		assert.Nil(t, qty.SelectAttr("modifiers"))

		for _, field := range children[1:4] {
			assert.Equal(t, "field", field.Tag)
			assert.Equal(t, "1", field.SelectAttrValue("readonly", ""), field.SelectAttrValue("name", ""))
		}
		assert.Equal(t, "default_code", children[1].SelectAttrValue("name", ""))
		assert.Equal(t, `{"readonly":true}`, children[1].SelectAttrValue("modifiers", ""))
		assert.Equal(t, `{"readonly":true,"required":true}`, children[2].SelectAttrValue("modifiers", ""))

		button := children[4]
		assert.Equal(t, "button", button.Tag)
		assert.Equal(t, "action_product_form", button.SelectAttrValue("name", ""))
		assert.Equal(t, "object", button.SelectAttrValue("type", ""))
		assert.Equal(t, "fa-external-link", button.SelectAttrValue("icon", ""))
		assert.Equal(t, "Open Product Form View", button.SelectAttrValue("string", ""))
		assert.Equal(t, "base.group_user", button.SelectAttrValue("groups", ""))
	})

	t.Run("qty inserted next to the first nested field", func(t *testing.T) {
		arch, err := FieldsViewGet(`<tree><group><field name="name"/></group><field name="lst_price"/></tree>`, "tree", true)
		require.NoError(t, err)

		root := parseArch(t, arch)
		group := root.SelectElement("group")
		require.NotNil(t, group)
		fields := group.SelectElements("field")
		require.Len(t, fields, 2)
		assert.Equal(t, "qty", fields[0].SelectAttrValue("name", ""))
		assert.Equal(t, "name", fields[1].SelectAttrValue("name", ""))
		assert.Equal(t, "button", root.ChildElements()[len(root.ChildElements())-1].Tag)
	})

	t.Run("invalid xml", func(t *testing.T) {
		_, err := FieldsViewGet(`<tree><field name=name/></tree>`, "tree", true)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "INVALID_VIEW"))
	})

	t.Run("root must be a tree", func(t *testing.T) {
		_, err := FieldsViewGet(`<form><field name="name"/></form>`, "tree", true)
		assert.True(t, shared.IsDomainError(err, "INVALID_VIEW"))
	})

	t.Run("tree without field", func(t *testing.T) {
		_, err := FieldsViewGet(`<tree/>`, "tree", true)
		assert.True(t, shared.IsDomainError(err, "INVALID_VIEW"))
	})

	t.Run("invalid modifiers", func(t *testing.T) {
		_, err := FieldsViewGet(`<tree><field name="name" modifiers="nope"/></tree>`, "tree", true)
		assert.True(t, shared.IsDomainError(err, "INVALID_VIEW"))
	})
}
