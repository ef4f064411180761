package tlds

// Official is a sorted list of widely used public top-level domains (TLDs)
// and effective top-level domains (eTLDs). It is a representative subset,
// not the full IANA root zone, curated from:
//   - https://data.iana.org/TLD/tlds-alpha-by-domain.txt
//   - https://publicsuffix.org/list/public_suffix_list.dat
var Official = []string{
	`app`,
	`biz`,
	`blog`,
	`ca`,
	`cloud`,
	`co`,
	`co.uk`,
	`com`,
	`com.au`,
	`de`,
	`dev`,
	`edu`,
	`eu`,
	`fr`,
	`gov`,
	`gov.uk`,
	`info`,
	`io`,
	`jp`,
	`me`,
	`mil`,
	`net`,
	`net.au`,
	`org`,
	`org.uk`,
	`ru`,
	`shop`,
	`store`,
	`tech`,
	`tv`,
	`uk`,
	`us`,
	`xyz`,
}
