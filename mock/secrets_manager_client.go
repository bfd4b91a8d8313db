package mock

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/evergreen-ci/utility"
)

// StoredSecret is a representation of a secret kept in the global secret
// storage cache.
type StoredSecret struct {
	// For the sake of simplicity, the secret ARN is synonymous with the secret
	// name.
	Name         string
	Value        string
	BinaryValue  []byte
	Versions     int
	IsDeleted    bool
	Created      time.Time
	LastUpdated  time.Time
	LastAccessed time.Time
	Deleted      time.Time
}

func exportSecretListEntry(s StoredSecret) types.SecretListEntry {
	e := types.SecretListEntry{
		ARN:              utility.ToStringPtr(s.Name),
		Name:             utility.ToStringPtr(s.Name),
		CreatedDate:      utility.ToTimePtr(s.Created),
		LastAccessedDate: utility.ToTimePtr(s.LastAccessed),
	}
	if !s.LastUpdated.IsZero() {
		e.LastChangedDate = utility.ToTimePtr(s.LastUpdated)
	}
	if !s.Deleted.IsZero() {
		e.DeletedDate = utility.ToTimePtr(s.Deleted)
	}
	return e
}

// GlobalSecretCache is a global secret storage cache that provides a simplified
// in-memory implementation of a secrets storage service. This can be used
// indirectly with the SecretsManagerClient to access and modify secrets, or
// used directly.
var GlobalSecretCache map[string]StoredSecret

func init() {
	ResetGlobalSecretCache()
}

// ResetGlobalSecretCache resets the global fake secret storage cache to an
// initialized but clean state.
func ResetGlobalSecretCache() {
	GlobalSecretCache = map[string]StoredSecret{}
}

// defaultListSecretsPageSize is the page size used by ListSecrets when the mock
// does not specify one.
const defaultListSecretsPageSize = 100

// SecretsManagerClient provides a mock implementation of a
// cirrus.SecretsManagerClient. This makes it possible to introspect on inputs
// to the client and control the client's output. It provides some default
// implementations where possible. By default, it will issue the API calls to
// the fake GlobalSecretCache.
type SecretsManagerClient struct {
	CreateSecretInput  *secretsmanager.CreateSecretInput
	CreateSecretOutput *secretsmanager.CreateSecretOutput
	CreateSecretError  error

	PutSecretValueInput  *secretsmanager.PutSecretValueInput
	PutSecretValueOutput *secretsmanager.PutSecretValueOutput
	PutSecretValueError  error

	GetSecretValueInput  *secretsmanager.GetSecretValueInput
	GetSecretValueOutput *secretsmanager.GetSecretValueOutput
	GetSecretValueError  error

	ListSecretsInput  *secretsmanager.ListSecretsInput
	ListSecretsOutput *secretsmanager.ListSecretsOutput
	ListSecretsError  error
	ListSecretsCalls  int
	// ListSecretsPageSize is the maximum number of secrets returned by each
	// call to ListSecrets. Defaults to 100.
	ListSecretsPageSize int

	DeleteSecretInput  *secretsmanager.DeleteSecretInput
	DeleteSecretOutput *secretsmanager.DeleteSecretOutput
	DeleteSecretError  error

	CloseError error
}

// CreateSecret saves the input options and returns a new mock secret. The mock
// output can be customized. By default, it will create and save a cached mock
// secret based on the input in the global secret cache.
func (c *SecretsManagerClient) CreateSecret(ctx context.Context, in *secretsmanager.CreateSecretInput) (*secretsmanager.CreateSecretOutput, error) {
	c.CreateSecretInput = in

	if c.CreateSecretOutput != nil || c.CreateSecretError != nil {
		return c.CreateSecretOutput, c.CreateSecretError
	}

	if in.Name == nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("missing secret name")}
	}
	if in.SecretBinary != nil && in.SecretString != nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("cannot specify both secret binary and secret string")}
	}
	if in.SecretBinary == nil && in.SecretString == nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("must specify either secret binary or secret string")}
	}

	name := utility.FromStringPtr(in.Name)
	if s, ok := GlobalSecretCache[name]; ok {
		if s.IsDeleted {
			return nil, &types.InvalidRequestException{Message: utility.ToStringPtr("secret is scheduled for deletion")}
		}
		return nil, &types.ResourceExistsException{Message: utility.ToStringPtr("secret already exists")}
	}

	ts := time.Now()
	GlobalSecretCache[name] = StoredSecret{
		Name:         name,
		Value:        utility.FromStringPtr(in.SecretString),
		BinaryValue:  in.SecretBinary,
		Versions:     1,
		Created:      ts,
		LastAccessed: ts,
	}

	return &secretsmanager.CreateSecretOutput{
		ARN:       utility.ToStringPtr(name),
		Name:      utility.ToStringPtr(name),
		VersionId: utility.ToStringPtr("1"),
	}, nil
}

// PutSecretValue saves the input options and stores a new value for an
// existing mock secret. The mock output can be customized. By default, it will
// update a cached mock secret if it exists in the global secret cache.
func (c *SecretsManagerClient) PutSecretValue(ctx context.Context, in *secretsmanager.PutSecretValueInput) (*secretsmanager.PutSecretValueOutput, error) {
	c.PutSecretValueInput = in

	if c.PutSecretValueOutput != nil || c.PutSecretValueError != nil {
		return c.PutSecretValueOutput, c.PutSecretValueError
	}

	if in.SecretId == nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("missing secret ID")}
	}
	if in.SecretBinary != nil && in.SecretString != nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("cannot specify both secret binary and secret string")}
	}
	if in.SecretBinary == nil && in.SecretString == nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("must specify either secret binary or secret string")}
	}

	id := utility.FromStringPtr(in.SecretId)
	s, ok := GlobalSecretCache[id]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: utility.ToStringPtr("secret not found")}
	}
	if s.IsDeleted {
		return nil, &types.InvalidRequestException{Message: utility.ToStringPtr("secret is deleted")}
	}

	s.Value = utility.FromStringPtr(in.SecretString)
	s.BinaryValue = in.SecretBinary
	s.Versions++
	ts := time.Now()
	s.LastAccessed = ts
	s.LastUpdated = ts
	GlobalSecretCache[id] = s

	return &secretsmanager.PutSecretValueOutput{
		ARN:       utility.ToStringPtr(s.Name),
		Name:      utility.ToStringPtr(s.Name),
		VersionId: utility.ToStringPtr(strconv.Itoa(s.Versions)),
	}, nil
}

// GetSecretValue saves the input options and returns an existing mock secret's
// value. The mock output can be customized. By default, it will return a cached
// mock secret if it exists in the global secret cache.
func (c *SecretsManagerClient) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	c.GetSecretValueInput = in

	if c.GetSecretValueOutput != nil || c.GetSecretValueError != nil {
		return c.GetSecretValueOutput, c.GetSecretValueError
	}

	if in.SecretId == nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("missing secret ID")}
	}

	id := utility.FromStringPtr(in.SecretId)
	s, ok := GlobalSecretCache[id]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: utility.ToStringPtr("secret not found")}
	}
	if s.IsDeleted {
		return nil, &types.InvalidRequestException{Message: utility.ToStringPtr("secret is deleted")}
	}

	s.LastAccessed = time.Now()
	GlobalSecretCache[id] = s

	out := &secretsmanager.GetSecretValueOutput{
		ARN:          utility.ToStringPtr(s.Name),
		Name:         utility.ToStringPtr(s.Name),
		SecretBinary: s.BinaryValue,
		CreatedDate:  utility.ToTimePtr(s.Created),
		VersionId:    utility.ToStringPtr(strconv.Itoa(s.Versions)),
	}
	if s.BinaryValue == nil {
		out.SecretString = utility.ToStringPtr(s.Value)
	}

	return out, nil
}

// ListSecrets saves the input options and returns a page of matching mock
// secrets' metadata information sorted by name. The mock output can be
// customized. By default, it will return the cached mock secrets in the global
// secret cache that are not deleted and match all the filters. Like Secrets
// Manager, a name filter value matches secret names with that prefix.
func (c *SecretsManagerClient) ListSecrets(ctx context.Context, in *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error) {
	c.ListSecretsInput = in
	c.ListSecretsCalls++

	if c.ListSecretsOutput != nil || c.ListSecretsError != nil {
		return c.ListSecretsOutput, c.ListSecretsError
	}

	for _, f := range in.Filters {
		if f.Key != types.FilterNameStringTypeName {
			return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("unsupported filter")}
		}
	}

	var matching []StoredSecret
	for _, s := range GlobalSecretCache {
		if s.IsDeleted {
			continue
		}
		if c.matchesAllFilters(s, in.Filters) {
			matching = append(matching, s)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].Name < matching[j].Name
	})

	start := 0
	if token := utility.FromStringPtr(in.NextToken); token != "" {
		var err error
		start, err = strconv.Atoi(token)
		if err != nil || start < 0 || start > len(matching) {
			return nil, &types.InvalidNextTokenException{Message: utility.ToStringPtr("invalid next token")}
		}
	}
	pageSize := defaultListSecretsPageSize
	if c.ListSecretsPageSize > 0 {
		pageSize = c.ListSecretsPageSize
	}
	end := start + pageSize
	if end > len(matching) {
		end = len(matching)
	}

	out := &secretsmanager.ListSecretsOutput{}
	for _, s := range matching[start:end] {
		out.SecretList = append(out.SecretList, exportSecretListEntry(s))
	}
	if end < len(matching) {
		out.NextToken = utility.ToStringPtr(strconv.Itoa(end))
	}

	return out, nil
}

func (c *SecretsManagerClient) matchesAllFilters(s StoredSecret, filters []types.Filter) bool {
	for _, f := range filters {
		if !c.matchesAnyNameValue(s, f.Values) {
			return false
		}
	}
	return true
}

// matchesAnyNameValue returns whether the secret name matches the prefix of any
// of the given values. If the value begins with a "!", the match is negated.
func (c *SecretsManagerClient) matchesAnyNameValue(s StoredSecret, vals []string) bool {
	for _, val := range vals {
		if strings.HasPrefix(val, "!") && !strings.HasPrefix(s.Name, val[1:]) {
			return true
		}
		if !strings.HasPrefix(val, "!") && strings.HasPrefix(s.Name, val) {
			return true
		}
	}
	return false
}

// DeleteSecret saves the input options and deletes an existing mock secret. The
// mock output can be customized. By default, it will delete a cached mock
// secret if it exists.
func (c *SecretsManagerClient) DeleteSecret(ctx context.Context, in *secretsmanager.DeleteSecretInput) (*secretsmanager.DeleteSecretOutput, error) {
	c.DeleteSecretInput = in

	if c.DeleteSecretOutput != nil || c.DeleteSecretError != nil {
		return c.DeleteSecretOutput, c.DeleteSecretError
	}

	if in.SecretId == nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("missing secret ID")}
	}

	force := in.ForceDeleteWithoutRecovery != nil && *in.ForceDeleteWithoutRecovery
	if force && in.RecoveryWindowInDays != nil {
		return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("cannot force delete without recovery and also schedule a recovery window")}
	}

	window := 30
	if in.RecoveryWindowInDays != nil {
		window = int(*in.RecoveryWindowInDays)
		if window < 7 || window > 30 {
			return nil, &types.InvalidParameterException{Message: utility.ToStringPtr("recovery window must be between 7 and 30 days")}
		}
	}

	id := utility.FromStringPtr(in.SecretId)
	s, ok := GlobalSecretCache[id]
	if !ok {
		if force {
			return &secretsmanager.DeleteSecretOutput{
				ARN:  utility.ToStringPtr(id),
				Name: utility.ToStringPtr(id),
			}, nil
		}
		return nil, &types.ResourceNotFoundException{Message: utility.ToStringPtr("secret not found")}
	}

	if force {
		delete(GlobalSecretCache, id)
		return &secretsmanager.DeleteSecretOutput{
			ARN:          utility.ToStringPtr(s.Name),
			Name:         utility.ToStringPtr(s.Name),
			DeletionDate: utility.ToTimePtr(time.Now()),
		}, nil
	}

	ts := time.Now()
	s.LastAccessed = ts
	s.LastUpdated = ts
	s.Deleted = ts.AddDate(0, 0, window)
	s.IsDeleted = true
	GlobalSecretCache[id] = s

	return &secretsmanager.DeleteSecretOutput{
		ARN:          utility.ToStringPtr(s.Name),
		Name:         utility.ToStringPtr(s.Name),
		DeletionDate: utility.ToTimePtr(s.Deleted),
	}, nil
}

// Close closes the mock client. The mock output can be customized. By default,
// it is a no-op that returns no error.
func (c *SecretsManagerClient) Close(ctx context.Context) error {
	if c.CloseError != nil {
		return c.CloseError
	}
	return nil
}
