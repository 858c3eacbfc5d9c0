package models

// PanelServerType marks a panel server record as belonging to this
// integration. Records of other module types never supply credentials.
const PanelServerType = "gamecp"

// PanelServerRecord is the billing system's record of a panel installation:
// where it lives and the access hash used to authenticate against it.
type PanelServerRecord struct {
	ID         string `dynamodbav:"Id"`
	Name       string `dynamodbav:"Name"`
	Hostname   string `dynamodbav:"Hostname"`
	IPAddress  string `dynamodbav:"IpAddress"`
	AccessHash string `dynamodbav:"AccessHash"`
	Type       string `dynamodbav:"Type"`
	GroupID    string `dynamodbav:"GroupId"`
}

// Address returns the hostname, falling back to the raw IP address
func (r PanelServerRecord) Address() string {
	if r.Hostname != "" {
		return r.Hostname
	}
	return r.IPAddress
}

// ModuleOptions are the per-product provisioning settings the billing admin
// configures on a product
type ModuleOptions struct {
	GameConfigID string `dynamodbav:"GameConfigId"`
	NodeID       string `dynamodbav:"NodeId"`
	Location     string `dynamodbav:"Location"`
	AutoDeploy   string `dynamodbav:"AutoDeploy"` // tri-state: "on"/"1"/"yes" enable
	NameFormat   string `dynamodbav:"NameFormat"` // e.g. "{product}" or "{clientname}'s {product}"
}

// Product is the billing system's product record
type Product struct {
	ID            string        `dynamodbav:"Id"`
	Name          string        `dynamodbav:"Name"`
	ServerGroupID string        `dynamodbav:"ServerGroupId"`
	Options       ModuleOptions `dynamodbav:"Options"`
}

// Credentials is a validated (endpoint, key) pair for the panel API.
// Endpoint always carries an explicit scheme before use.
type Credentials struct {
	Endpoint string
	Key      string
}

// Complete reports whether both endpoint and key are present
func (c Credentials) Complete() bool {
	return c.Endpoint != "" && c.Key != ""
}
