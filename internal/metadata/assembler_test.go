package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

func metaType(short string, props ...string) *metadata.MetaType {
	mt := &metadata.MetaType{
		ShortName:            short,
		Namespace:            ns,
		DataProperties:       []*metadata.MetaDataProperty{},
		NavigationProperties: []*metadata.MetaNavProperty{},
	}
	for _, p := range props {
		mt.DataProperties = append(mt.DataProperties, &metadata.MetaDataProperty{
			MetaProperty: metadata.MetaProperty{NameOnServer: p},
		})
	}
	return mt
}

func navTo(name, target, assoc string, scalar bool, fks, invFks, principal []string) *metadata.MetaNavProperty {
	return &metadata.MetaNavProperty{
		MetaProperty:               metadata.MetaProperty{NameOnServer: name},
		EntityTypeName:             qn(target).String(),
		IsScalar:                   scalar,
		AssociationName:            assoc,
		ForeignKeyNamesOnServer:    fks,
		InvForeignKeyNamesOnServer: invFks,
		PrincipalKeyNames:          principal,
	}
}

// regionPair models PreviousEmployee.Region referencing Region.RegionDescription.
func regionPair() (*metadata.MetaType, *metadata.MetaType) {
	region := metaType("Region", "RegionID", "RegionDescription")
	prev := metaType("PreviousEmployee", "EmployeeID", "Region")
	prev.NavigationProperties = append(prev.NavigationProperties,
		navTo("EmpRegion", "Region", "AN_PreviousEmployee_Region_Region", true,
			[]string{"Region"}, nil, []string{"RegionDescription"}))
	region.NavigationProperties = append(region.NavigationProperties,
		navTo("PreviousEmployees", "PreviousEmployee", "AN_PreviousEmployee_Region_Region", false,
			nil, []string{"Region"}, []string{"RegionDescription"}))
	return region, prev
}

func TestAssembleAlternatePrincipalKey(t *testing.T) {
	region, prev := regionPair()
	doc, err := metadata.Assemble("1.0.5", "camelCase", []*metadata.MetaType{region, prev}, nil)
	require.NoError(t, err)
	assert.Len(t, doc.StructuralTypes, 2)
	assert.NotNil(t, doc.EnumTypes)
}

func TestAssembleFailures(t *testing.T) {
	tests := []struct {
		name   string
		types  func() []*metadata.MetaType
		enums  []*metadata.MetaEnum
		reason string
	}{
		{
			name: "duplicate type",
			types: func() []*metadata.MetaType {
				return []*metadata.MetaType{metaType("Order", "ID"), metaType("Order", "ID")}
			},
			reason: "duplicate structural type",
		},
		{
			name: "unknown principal key",
			types: func() []*metadata.MetaType {
				region, prev := regionPair()
				prev.NavigationProperties[0].PrincipalKeyNames = []string{"RegionName"}
				return []*metadata.MetaType{region, prev}
			},
			reason: "principal key RegionName",
		},
		{
			name: "unknown inverse foreign key",
			types: func() []*metadata.MetaType {
				region, prev := regionPair()
				region.NavigationProperties[0].InvForeignKeyNamesOnServer = []string{"RegionRef"}
				return []*metadata.MetaType{region, prev}
			},
			reason: "inverse foreign key RegionRef",
		},
		{
			name: "unknown target",
			types: func() []*metadata.MetaType {
				_, prev := regionPair()
				return []*metadata.MetaType{prev}
			},
			reason: "unknown target entity type Region:#Sample",
		},
		{
			name: "unknown base type",
			types: func() []*metadata.MetaType {
				mt := metaType("InternationalOrder", "CustomsDescription")
				mt.BaseTypeName = "Order:#Sample"
				return []*metadata.MetaType{mt}
			},
			reason: "unknown base type",
		},
		{
			name: "inheritance cycle",
			types: func() []*metadata.MetaType {
				a, b := metaType("A", "ID"), metaType("B", "Name")
				a.BaseTypeName = "B:#Sample"
				b.BaseTypeName = "A:#Sample"
				return []*metadata.MetaType{a, b}
			},
			reason: "inheritance cycle",
		},
		{
			name: "association shared three ways",
			types: func() []*metadata.MetaType {
				region, prev := regionPair()
				prev.NavigationProperties = append(prev.NavigationProperties,
					navTo("OtherRegion", "Region", "AN_PreviousEmployee_Region_Region", true,
						[]string{"Region"}, nil, []string{"RegionDescription"}))
				return []*metadata.MetaType{region, prev}
			},
			reason: "shared by 3 navigations",
		},
		{
			name: "association ends disagree",
			types: func() []*metadata.MetaType {
				region, prev := regionPair()
				other := metaType("Territory", "TerritoryID", "Region")
				other.NavigationProperties = append(other.NavigationProperties,
					navTo("Region", "Region", "AN_PreviousEmployee_Region_Region", true,
						[]string{"Region"}, nil, nil))
				prev.NavigationProperties = nil
				return []*metadata.MetaType{region, prev, other}
			},
			reason: "do not point at each other",
		},
		{
			name: "association keys disagree",
			types: func() []*metadata.MetaType {
				region, prev := regionPair()
				region.NavigationProperties[0].InvForeignKeyNamesOnServer = []string{"EmployeeID"}
				region.NavigationProperties[0].PrincipalKeyNames = nil
				return []*metadata.MetaType{region, prev}
			},
			reason: "foreign keys do not match",
		},
		{
			name: "composite arity mismatch",
			types: func() []*metadata.MetaType {
				region, prev := regionPair()
				prev.NavigationProperties[0].PrincipalKeyNames = []string{"RegionID", "RegionDescription"}
				return []*metadata.MetaType{region, prev}
			},
			reason: "1 foreign keys reference 2 principal keys",
		},
		{
			name: "unknown complex type",
			types: func() []*metadata.MetaType {
				mt := metaType("Supplier", "ID")
				mt.DataProperties = append(mt.DataProperties, &metadata.MetaDataProperty{
					MetaProperty:    metadata.MetaProperty{NameOnServer: "Location"},
					ComplexTypeName: "Location:#Sample",
				})
				return []*metadata.MetaType{mt}
			},
			reason: "unknown complex type",
		},
		{
			name: "unknown enum",
			types: func() []*metadata.MetaType {
				mt := metaType("User", "ID")
				mt.DataProperties[0].EnumType = "Role:#Sample"
				return []*metadata.MetaType{mt}
			},
			reason: "unknown enum type",
		},
		{
			name:  "duplicate enum",
			types: func() []*metadata.MetaType { return nil },
			enums: []*metadata.MetaEnum{
				{ShortName: "Role", Namespace: ns, Values: []string{}, Ordinals: []int64{}},
				{ShortName: "Role", Namespace: ns, Values: []string{}, Ordinals: []int64{}},
			},
			reason: "duplicate enum type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := metadata.Assemble("1.0.5", "camelCase", tt.types(), tt.enums)
			assert.Nil(t, doc)
			require.ErrorIs(t, err, metadata.ErrUnsupportedModel)
			assert.ErrorContains(t, err, tt.reason)
		})
	}
}

func TestAssembleInheritedForeignKey(t *testing.T) {
	customer := metaType("Customer", "CustomerID")
	order := metaType("Order", "OrderID", "CustomerID")
	intl := metaType("InternationalOrder", "CustomsDescription")
	intl.BaseTypeName = "Order:#Sample"
	intl.NavigationProperties = append(intl.NavigationProperties,
		navTo("Customer", "Customer", "AN_InternationalOrder_Customer_CustomerID", true,
			[]string{"CustomerID"}, nil, []string{"CustomerID"}))

	_, err := metadata.Assemble("1.0.5", "camelCase", []*metadata.MetaType{customer, order, intl}, nil)
	assert.NoError(t, err)
}
