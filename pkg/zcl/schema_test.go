package zcl

import (
	"strings"
	"testing"
)

const haXML = `<?xml version="1.0"?>
<configurator>
  <cluster>
    <name>Door Lock</name>
    <define>DOOR_LOCK_CLUSTER</define>
    <code>0x0101</code>
    <command name="SetPin" code="0x00">
      <arg name="user_id" type="INT16U"/>
      <arg name="user_status" type="ENUM8"/>
      <arg name="user_type" type="ENUM8"/>
      <arg name="pin_length" type="ENUM8"/>
      <arg name="pin" type="CHAR_STRING"/>
    </command>
    <attribute code="0x0000" type="ENUM8">Lock State</attribute>
  </cluster>
  <cluster>
    <name>On/Off</name>
    <define>ON_OFF_CLUSTER</define>
    <code>6</code>
    <command name="Off" code="0x00"></command>
    <command name="On" code="0x01"></command>
    <attribute code="0x0000" type="BOOLEAN">OnOff</attribute>
  </cluster>
  <enum name="Lock State Enum">
    <item name="Locked" value="0x01"/>
    <item name="Unlocked" value="0x02"/>
  </enum>
</configurator>
`

const haExtensionXML = `<?xml version="1.0"?>
<configurator>
  <clusterExtension code="0x0101">
    <command name="ClearPin" code="0x02">
      <arg name="user_id" type="INT16U"/>
    </command>
    <attribute code="0x0001" type="INT32U">Auto Relock Time</attribute>
  </clusterExtension>
</configurator>
`

func TestLoadSchemaBasic(t *testing.T) {
	s, err := LoadSchemaReader(strings.NewReader(haXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cluster, ok := s.Cluster("Door Lock")
	if !ok {
		t.Fatal("expected door_lock cluster to be present")
	}
	if cluster.Code != 0x0101 {
		t.Errorf("got code 0x%04X, want 0x0101", cluster.Code)
	}

	proto, ok := cluster.Command("SetPin")
	if !ok {
		t.Fatal("expected set_pin command to be present")
	}
	if proto.Code != 0x00 || len(proto.Params) != 5 {
		t.Errorf("unexpected prototype: %+v", proto)
	}
	if proto.Params[4].Type != CharString {
		t.Errorf("expected last param CHAR_STRING, got %s", proto.Params[4].Type)
	}

	attr, ok := cluster.AttributeByName("Lock State")
	if !ok {
		t.Fatal("expected lock_state attribute")
	}
	if attr.Size == nil || *attr.Size != 1 {
		t.Errorf("expected ENUM8 attribute size 1, got %v", attr.Size)
	}

	onOff, ok := s.Cluster("On/Off")
	if !ok {
		t.Fatal("expected on_off cluster (decimal code) to be present")
	}
	if onOff.Code != 6 {
		t.Errorf("got code %d, want 6", onOff.Code)
	}

	onOffAttr, ok := onOff.AttributeByName("OnOff")
	if !ok {
		t.Fatal("expected on_off attribute")
	}
	if onOffAttr.Size == nil || *onOffAttr.Size != 1 {
		t.Errorf("expected BOOLEAN attribute size 1, got %v", onOffAttr.Size)
	}

	enum, ok := s.Enum("Lock State Enum")
	if !ok {
		t.Fatal("expected lock_state_enum to be present")
	}
	if enum.Items["locked"] != 1 || enum.Items["unlocked"] != 2 {
		t.Errorf("unexpected enum items: %+v", enum.Items)
	}
}

func TestLoadSchemaClusterExtensionMerges(t *testing.T) {
	s, err := LoadSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.loadReader(strings.NewReader(haXML)); err != nil {
		t.Fatalf("load base: %v", err)
	}
	if err := s.loadReader(strings.NewReader(haExtensionXML)); err != nil {
		t.Fatalf("load extension: %v", err)
	}

	cluster, ok := s.Cluster("Door Lock")
	if !ok {
		t.Fatal("expected door_lock cluster")
	}
	if _, ok := cluster.Command("ClearPin"); !ok {
		t.Error("expected clusterExtension command to be merged in")
	}
	if _, ok := cluster.AttributeByName("Auto Relock Time"); !ok {
		t.Error("expected clusterExtension attribute to be merged in")
	}
	// Original commands/attributes survive the extension.
	if _, ok := cluster.Command("SetPin"); !ok {
		t.Error("expected original command to survive extension merge")
	}
}

func TestVariableLengthAttributeHasNoSize(t *testing.T) {
	const xmlDoc = `<?xml version="1.0"?>
<configurator>
  <cluster>
    <name>Basic</name>
    <define>BASIC_CLUSTER</define>
    <code>0x0000</code>
    <attribute code="0x0004" type="CHAR_STRING">Manufacturer Name</attribute>
  </cluster>
</configurator>
`
	s, err := LoadSchemaReader(strings.NewReader(xmlDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cluster, _ := s.Cluster("Basic")
	attr, ok := cluster.AttributeByName("Manufacturer Name")
	if !ok {
		t.Fatal("expected manufacturer_name attribute")
	}
	if attr.Size != nil {
		t.Errorf("expected nil size for CHAR_STRING attribute, got %v", *attr.Size)
	}
}
