package store

import "context"

// AliasAdapter narrows Store to the alias.Store interface. Typesense
// aliases are strictly one-to-one (an alias always resolves to exactly one
// collection), unlike the many-to-many alias model spec.md §4.7 assumes;
// CollectionsBehindAlias therefore returns at most one element, and
// AliasPublisher's "olds" list is always of length 0 or 1 here. See
// DESIGN.md for why this is an acceptable substitution.
type AliasAdapter struct {
	*Store
}

func (a AliasAdapter) GetAlias(ctx context.Context, alias string) (string, error) {
	result, err := a.Store.GetAlias(ctx, alias)
	if err != nil {
		return "", err
	}
	return result.CollectionName, nil
}

func (a AliasAdapter) UpsertAlias(ctx context.Context, alias, collection string) error {
	_, err := a.Store.UpsertAlias(ctx, alias, collection)
	return err
}

func (a AliasAdapter) DeleteAlias(ctx context.Context, alias string) error {
	_, err := a.Store.DeleteAlias(ctx, alias)
	return err
}

func (a AliasAdapter) DeleteCollection(ctx context.Context, name string) error {
	_, err := a.Store.DeleteCollection(ctx, name)
	return err
}

func (a AliasAdapter) CollectionsBehindAlias(ctx context.Context, alias string) ([]string, error) {
	current, err := a.GetAlias(ctx, alias)
	if err != nil {
		if !a.Store.AliasExists(ctx, alias) {
			return nil, nil
		}
		return nil, err
	}
	return []string{current}, nil
}
