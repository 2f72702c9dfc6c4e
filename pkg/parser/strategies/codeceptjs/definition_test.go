package codeceptjs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser/jsast"
	"github.com/specvital/testdiff/pkg/parser/strategies"
)

func extract(t *testing.T, source string) []domain.TestRecord {
	t.Helper()

	tree, err := jsast.NewProvider().Parse(context.Background(), []byte(source), "login_test.js")
	require.NoError(t, err)
	defer tree.Close()

	return NewDefinition().Extract(tree.Root())
}

func TestNewDefinition(t *testing.T) {
	def := NewDefinition()

	assert.Equal(t, "codeceptjs", def.Name())
	assert.Equal(t, "codeceptjs", strategies.Resolve("codecept").Name())
	assert.Equal(t, "codeceptjs", strategies.Resolve("codeceptjs").Name())
}

func TestCodeceptParser_Extract(t *testing.T) {
	t.Parallel()

	t.Run("login scenario", func(t *testing.T) {
		t.Parallel()

		records := extract(t, `Feature('Login'); Scenario('can login', fn); Scenario.skip('cannot login twice', fn);`)

		require.Len(t, records, 2)
		assert.Equal(t, "Login > can login", records[0].FullName(false))
		assert.False(t, records[0].Skipped)
		assert.Equal(t, "Login > cannot login twice", records[1].FullName(false))
		assert.True(t, records[1].Skipped)
	})

	t.Run("scenario bodies and todo", func(t *testing.T) {
		t.Parallel()

		source := `
Feature('Checkout');

Scenario('pays by card', async ({ I }) => {
  I.amOnPage('/checkout');
  I.see('Total');
});

Scenario.todo('pays by invoice');
xScenario('pays by cheque', ({ I }) => {});
Scenario.only('applies coupon', ({ I }) => {});
`
		records := extract(t, source)

		require.Len(t, records, 4)
		assert.False(t, records[0].Skipped)
		assert.True(t, records[1].Skipped)
		assert.True(t, records[2].Skipped)
		assert.Equal(t, domain.TestStatusFocused, records[3].Status)
		for _, r := range records {
			assert.Equal(t, []string{"Checkout"}, r.SuitePath())
		}
	})

	t.Run("data-driven scenarios", func(t *testing.T) {
		t.Parallel()

		source := `
Feature('Login');

const accounts = new DataTable(['login', 'password']);
accounts.add(['davert', '123456']);

Data(accounts).Scenario('data driven', ({ I, current }) => {
  I.fillField('Username', current.login);
});
Data(accounts).Scenario.skip('data driven lockout', ({ I }) => {});
Data(accounts).Scenario.only('data driven reset', ({ I }) => {});
Scenario('plain', ({ I }) => {});
`
		records := extract(t, source)

		require.Len(t, records, 4)
		assert.Equal(t, "Login > data driven", records[0].FullName(false))
		assert.Equal(t, domain.TestStatusActive, records[0].Status)
		assert.Equal(t, "Login > data driven lockout", records[1].FullName(false))
		assert.True(t, records[1].Skipped)
		assert.Equal(t, "Login > data driven reset", records[2].FullName(false))
		assert.Equal(t, domain.TestStatusFocused, records[2].Status)
		assert.Equal(t, "Login > plain", records[3].FullName(false))
	})

	t.Run("ignores block-style declarations", func(t *testing.T) {
		t.Parallel()

		records := extract(t, `describe('x', () => { it('y', () => {}); });`)

		assert.Empty(t, records)
	})
}
